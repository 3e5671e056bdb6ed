package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"vaadbayit/config"
	"vaadbayit/store"
)

// sessionKey KV key under which the current session is persisted, so a new
// SDK instance resumes the signed-in state (the mobile original relied on
// AsyncStorage for the same thing).
const sessionKey = "vaadbayit:auth:session"

// User authenticated identity as reported by the auth backend.
type User struct {
	ID           string         `json:"id"`
	Aud          string         `json:"aud"`
	Role         string         `json:"role"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at,omitzero"`
}

// Session issued token pair plus the user it belongs to.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// expired reports whether the access token is past (or within 30s of) expiry.
func (s *Session) expired() bool {
	return s.ExpiresAt > 0 && time.Now().Unix() >= s.ExpiresAt-30
}

// AuthEvent auth-state-change notification kind
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// AuthStateFunc subscriber callback; session is nil on SIGNED_OUT.
type AuthStateFunc func(event AuthEvent, session *Session)

// Auth wraps the GoTrue auth interface: sign-up/sign-in/sign-out, password
// recovery, session persistence and refresh, and state-change subscriptions.
type Auth struct {
	http   *resty.Client
	cfg    config.SupabaseConfig
	kv     store.KV
	logger *zap.Logger

	mu      sync.Mutex
	session *Session

	subMu   sync.Mutex
	subs    map[int]AuthStateFunc
	nextSub int
}

// NewAuth creates the auth client and resumes any persisted session.
func NewAuth(cfg config.SupabaseConfig, kv store.KV, logger *zap.Logger) *Auth {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/") + "/auth/v1").
		SetTimeout(timeout).
		SetHeader("Content-Type", acceptJSON).
		SetHeader("Accept", acceptJSON).
		SetHeader("apikey", cfg.AnonKey)

	a := &Auth{
		http:   httpClient,
		cfg:    cfg,
		kv:     kv,
		logger: logger,
		subs:   map[int]AuthStateFunc{},
	}
	a.session = a.loadPersisted(context.Background())
	return a
}

// SignUp registers a new credential pair. Depending on backend settings the
// response is either a full session or just the created user (email
// confirmation pending); in the latter case the returned session carries the
// user with empty tokens.
func (a *Auth) SignUp(ctx context.Context, email, password string) (*Session, error) {
	body, err := a.post(ctx, "/signup", map[string]string{"email": email, "password": password}, "")
	if err != nil {
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(body, sess); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}
	if sess.AccessToken == "" {
		user := &User{}
		if err := json.Unmarshal(body, user); err == nil && user.ID != "" {
			sess.User = user
		}
		return sess, nil
	}

	a.adopt(sess, EventSignedIn)
	return sess, nil
}

// SignInWithPassword exchanges email+password for a session.
func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := a.post(ctx, "/token?grant_type=password", map[string]string{"email": email, "password": password}, "")
	if err != nil {
		return nil, err
	}
	sess := &Session{}
	if err := json.Unmarshal(body, sess); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	a.adopt(sess, EventSignedIn)
	return sess, nil
}

// SignOut revokes the current session remotely (best effort) and always
// clears the local one.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	sess := a.session
	a.session = nil
	a.mu.Unlock()

	if a.kv != nil {
		if err := a.kv.Delete(ctx, sessionKey); err != nil {
			a.logger.Warn("failed to clear persisted session", zap.Error(err))
		}
	}
	if sess != nil && sess.AccessToken != "" {
		if _, err := a.post(ctx, "/logout", nil, sess.AccessToken); err != nil {
			a.logger.Warn("remote logout failed, session cleared locally", zap.Error(err))
		}
	}
	a.notify(EventSignedOut, nil)
	return nil
}

// ResetPasswordForEmail triggers the backend's password-recovery mail.
func (a *Auth) ResetPasswordForEmail(ctx context.Context, email string) error {
	_, err := a.post(ctx, "/recover", map[string]string{"email": email}, "")
	return err
}

// GetSession returns the current session, transparently refreshing an
// expired access token. Returns (nil, nil) when signed out.
// Subscribers are notified after a.mu is released so a callback may call
// back into the auth client (same contract as adopt).
func (a *Auth) GetSession(ctx context.Context) (*Session, error) {
	a.mu.Lock()

	if a.session == nil {
		a.session = a.loadPersisted(ctx)
	}
	if a.session == nil {
		a.mu.Unlock()
		return nil, nil
	}
	if a.session.expired() && a.session.RefreshToken != "" {
		refreshed, err := a.refresh(ctx, a.session.RefreshToken)
		if err != nil {
			a.mu.Unlock()
			return nil, err
		}
		a.session = refreshed
		a.persist(ctx, refreshed)
		a.mu.Unlock()
		a.notify(EventTokenRefreshed, refreshed)
		return refreshed, nil
	}

	sess := a.session
	a.mu.Unlock()
	return sess, nil
}

// GetUser returns the authenticated user, or (nil, nil) when signed out.
// The session's embedded user (or its token claims) answer without a network
// round trip; the /user endpoint is the fallback.
func (a *Auth) GetUser(ctx context.Context) (*User, error) {
	sess, err := a.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if sess.User != nil && sess.User.ID != "" {
		return sess.User, nil
	}
	if user := a.userFromClaims(sess.AccessToken); user != nil {
		return user, nil
	}

	body, err := a.get(ctx, "/user", sess.AccessToken)
	if err != nil {
		return nil, err
	}
	user := &User{}
	if err := json.Unmarshal(body, user); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return user, nil
}

// AccessToken implements TokenSource for the table and storage clients.
// Empty when signed out or when the session cannot be refreshed.
func (a *Auth) AccessToken(ctx context.Context) string {
	sess, err := a.GetSession(ctx)
	if err != nil || sess == nil {
		return ""
	}
	return sess.AccessToken
}

// OnAuthStateChange registers fn for sign-in/sign-out/refresh events and
// returns an unsubscribe func.
func (a *Auth) OnAuthStateChange(fn AuthStateFunc) func() {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	return func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		delete(a.subs, id)
	}
}

func (a *Auth) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body, err := a.post(ctx, "/token?grant_type=refresh_token", map[string]string{"refresh_token": refreshToken}, "")
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	sess := &Session{}
	if err := json.Unmarshal(body, sess); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if sess.ExpiresAt == 0 && sess.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Unix() + sess.ExpiresIn
	}
	return sess, nil
}

// adopt installs a freshly issued session and notifies subscribers.
func (a *Auth) adopt(sess *Session, event AuthEvent) {
	if sess.ExpiresAt == 0 && sess.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Unix() + sess.ExpiresIn
	}
	a.mu.Lock()
	a.session = sess
	a.mu.Unlock()
	a.persist(context.Background(), sess)
	a.notify(event, sess)
}

func (a *Auth) persist(ctx context.Context, sess *Session) {
	if a.kv == nil {
		return
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	if err := a.kv.Set(ctx, sessionKey, string(raw), 0); err != nil {
		a.logger.Warn("failed to persist session", zap.Error(err))
	}
}

func (a *Auth) loadPersisted(ctx context.Context) *Session {
	if a.kv == nil {
		return nil
	}
	raw, err := a.kv.Get(ctx, sessionKey)
	if err != nil {
		if err != store.ErrMiss {
			a.logger.Warn("failed to load persisted session", zap.Error(err))
		}
		return nil
	}
	sess := &Session{}
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		a.logger.Warn("discarding unreadable persisted session", zap.Error(err))
		return nil
	}
	return sess
}

// userFromClaims decodes the access token's claims into a User. With a
// configured JWT secret the signature is verified; without one the claims
// are read unverified (expiry bookkeeping only; the backend still verifies
// every request server-side).
func (a *Auth) userFromClaims(token string) *User {
	claims := jwt.MapClaims{}
	if a.cfg.JWTSecret != "" {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(a.cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			return nil
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil
		}
	}

	user := &User{
		ID:    stringClaim(claims, "sub"),
		Email: stringClaim(claims, "email"),
		Phone: stringClaim(claims, "phone"),
		Role:  stringClaim(claims, "role"),
		Aud:   stringClaim(claims, "aud"),
	}
	if user.ID == "" {
		return nil
	}
	return user
}

func (a *Auth) notify(event AuthEvent, sess *Session) {
	a.subMu.Lock()
	subs := make([]AuthStateFunc, 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.subMu.Unlock()
	for _, fn := range subs {
		fn(event, sess)
	}
}

func (a *Auth) post(ctx context.Context, path string, body any, bearer string) ([]byte, error) {
	return a.doAuth(ctx, "POST", path, body, bearer)
}

func (a *Auth) get(ctx context.Context, path string, bearer string) ([]byte, error) {
	return a.doAuth(ctx, "GET", path, nil, bearer)
}

func (a *Auth) doAuth(ctx context.Context, method, path string, body any, bearer string) ([]byte, error) {
	req := a.http.R().SetContext(ctx)
	if bearer != "" {
		req.SetAuthToken(bearer)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		a.logger.Error("auth request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("auth %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := decodeAPIError(resp.StatusCode(), resp.Body())
		a.logger.Error("auth operation rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}
	return resp.Body(), nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
