package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/config"
	"vaadbayit/store"
)

// newAuthServer stub GoTrue answering password sign-in, refresh, signup and
// logout.
func newAuthServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var refreshes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/v1/token" && r.URL.Query().Get("grant_type") == "password":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["password"] != "correct" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{
				"access_token": "jwt-1",
				"token_type": "bearer",
				"expires_in": 3600,
				"refresh_token": "refresh-1",
				"user": {"id": "user-1", "email": "noa@example.com", "role": "authenticated"}
			}`))
		case r.URL.Path == "/auth/v1/token" && r.URL.Query().Get("grant_type") == "refresh_token":
			atomic.AddInt32(&refreshes, 1)
			_, _ = w.Write([]byte(`{
				"access_token": "jwt-2",
				"token_type": "bearer",
				"expires_in": 3600,
				"refresh_token": "refresh-2",
				"user": {"id": "user-1", "email": "noa@example.com", "role": "authenticated"}
			}`))
		case r.URL.Path == "/auth/v1/signup":
			_, _ = w.Write([]byte(`{"id": "user-9", "email": "new@example.com", "role": "authenticated"}`))
		case r.URL.Path == "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &refreshes
}

func newTestAuth(t *testing.T, kv store.KV) *Auth {
	t.Helper()
	srv, _ := newAuthServer(t)
	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}
	return NewAuth(cfg, kv, zap.NewNop())
}

func TestSignInWithPassword(t *testing.T) {
	auth := newTestAuth(t, store.NewMemoryKV())

	sess, err := auth.SignInWithPassword(context.Background(), "noa@example.com", "correct")
	require.NoError(t, err)
	require.Equal(t, "jwt-1", sess.AccessToken)
	require.NotNil(t, sess.User)
	require.Equal(t, "user-1", sess.User.ID)
	// expires_at is derived from expires_in when missing.
	require.Greater(t, sess.ExpiresAt, time.Now().Unix())

	user, err := auth.GetUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "jwt-1", auth.AccessToken(context.Background()))
}

func TestSignInWithPassword_BadCredentials(t *testing.T) {
	auth := newTestAuth(t, store.NewMemoryKV())

	_, err := auth.SignInWithPassword(context.Background(), "noa@example.com", "wrong")
	require.Error(t, err)
	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Message, "Invalid login credentials")

	user, err := auth.GetUser(context.Background())
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSignUp_ConfirmationPending(t *testing.T) {
	auth := newTestAuth(t, store.NewMemoryKV())

	// Backend returned a bare user: no session is adopted.
	sess, err := auth.SignUp(context.Background(), "new@example.com", "password1")
	require.NoError(t, err)
	require.Empty(t, sess.AccessToken)
	require.NotNil(t, sess.User)
	require.Equal(t, "user-9", sess.User.ID)

	require.Empty(t, auth.AccessToken(context.Background()))
}

func TestSessionPersistsAcrossInstances(t *testing.T) {
	kv := store.NewMemoryKV()
	srv, _ := newAuthServer(t)
	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}

	first := NewAuth(cfg, kv, zap.NewNop())
	_, err := first.SignInWithPassword(context.Background(), "noa@example.com", "correct")
	require.NoError(t, err)

	// A fresh instance over the same KV resumes the signed-in state.
	second := NewAuth(cfg, kv, zap.NewNop())
	user, err := second.GetUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "user-1", user.ID)
}

func TestGetSession_RefreshesExpired(t *testing.T) {
	kv := store.NewMemoryKV()
	srv, refreshes := newAuthServer(t)
	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}

	// Seed an expired persisted session.
	expired := &Session{
		AccessToken:  "jwt-stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Unix() - 60,
		User:         &User{ID: "user-1"},
	}
	raw, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), sessionKey, string(raw), 0))

	auth := NewAuth(cfg, kv, zap.NewNop())

	var events []AuthEvent
	auth.OnAuthStateChange(func(event AuthEvent, sess *Session) {
		events = append(events, event)
	})

	sess, err := auth.GetSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, "jwt-2", sess.AccessToken)
	require.Equal(t, int32(1), atomic.LoadInt32(refreshes))
	require.Equal(t, []AuthEvent{EventTokenRefreshed}, events)

	// The refreshed session is re-persisted.
	stored, err := kv.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	require.Contains(t, stored, "jwt-2")
}

func TestGetSession_SubscriberReentersDuringRefresh(t *testing.T) {
	kv := store.NewMemoryKV()
	srv, _ := newAuthServer(t)
	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}

	expired := &Session{
		AccessToken:  "jwt-stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Unix() - 60,
		User:         &User{ID: "user-1"},
	}
	raw, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), sessionKey, string(raw), 0))

	auth := NewAuth(cfg, kv, zap.NewNop())

	// The natural reaction to TOKEN_REFRESHED is to read the new token,
	// which calls back into the auth client from the callback.
	var tokenSeen string
	auth.OnAuthStateChange(func(event AuthEvent, sess *Session) {
		if event == EventTokenRefreshed {
			tokenSeen = auth.AccessToken(context.Background())
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := auth.GetSession(context.Background())
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("GetSession did not return while a subscriber re-entered the auth client")
	}
	require.Equal(t, "jwt-2", tokenSeen)
}

func TestSignOut(t *testing.T) {
	kv := store.NewMemoryKV()
	auth := newTestAuth(t, kv)

	_, err := auth.SignInWithPassword(context.Background(), "noa@example.com", "correct")
	require.NoError(t, err)

	var events []AuthEvent
	unsubscribe := auth.OnAuthStateChange(func(event AuthEvent, sess *Session) {
		events = append(events, event)
	})

	require.NoError(t, auth.SignOut(context.Background()))
	require.Equal(t, []AuthEvent{EventSignedOut}, events)
	require.Empty(t, auth.AccessToken(context.Background()))

	// The persisted session is gone.
	_, err = kv.Get(context.Background(), sessionKey)
	require.ErrorIs(t, err, store.ErrMiss)

	// After unsubscribing no further events arrive.
	unsubscribe()
	_, err = auth.SignInWithPassword(context.Background(), "noa@example.com", "correct")
	require.NoError(t, err)
	require.Equal(t, []AuthEvent{EventSignedOut}, events)
}

func TestOnAuthStateChange_SignInEvent(t *testing.T) {
	auth := newTestAuth(t, store.NewMemoryKV())

	var gotEvent AuthEvent
	var gotSession *Session
	auth.OnAuthStateChange(func(event AuthEvent, sess *Session) {
		gotEvent = event
		gotSession = sess
	})

	_, err := auth.SignInWithPassword(context.Background(), "noa@example.com", "correct")
	require.NoError(t, err)
	require.Equal(t, EventSignedIn, gotEvent)
	require.NotNil(t, gotSession)
	require.Equal(t, "jwt-1", gotSession.AccessToken)
}
