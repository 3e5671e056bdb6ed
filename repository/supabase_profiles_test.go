package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/config"
	"vaadbayit/domain"
	"vaadbayit/supabase"
)

func domainProfileFixture() domain.Profile {
	return domain.Profile{
		AuthUID:   "user-1",
		Email:     "noa@example.com",
		FirstName: "Noa",
		LastName:  "Mizrahi",
		IDNumber:  "012345678",
	}
}

func newProfilesRepo(t *testing.T, handler http.HandlerFunc) *SupabaseProfilesRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}
	return NewSupabaseProfilesRepo(supabase.NewClient(cfg, zap.NewNop()))
}

func TestProfilesGetByAuthUID_ReadsEveryStoredColumn(t *testing.T) {
	var query url.Values
	repo := newProfilesRepo(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"auth_uid": "user-1",
			"email": "noa@example.com",
			"first_name": "Noa",
			"last_name": "Mizrahi",
			"id_number": "012345678",
			"is_house_committee": false
		}`))
	})

	profile, err := repo.GetByAuthUID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Equal(t, "012345678", profile.IDNumber)

	require.Equal(t, "eq.user-1", query.Get("auth_uid"))
	// Every column Upsert writes comes back on a read.
	selected := strings.Split(query.Get("select"), ",")
	for _, col := range []string{
		"auth_uid", "email", "first_name", "last_name", "phone", "address",
		"zip_code", "id_number", "date_of_birth", "photo_url",
		"is_house_committee", "committee_payment_link",
	} {
		require.Contains(t, selected, col)
	}
}

func TestProfilesUpsert_ConflictsOnAuthUID(t *testing.T) {
	var query url.Values
	var body map[string]any
	repo := newProfilesRepo(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
	})

	err := repo.Upsert(context.Background(), domainProfileFixture())
	require.NoError(t, err)
	require.Equal(t, "auth_uid", query.Get("on_conflict"))
	require.Equal(t, "user-1", body["auth_uid"])
	require.Equal(t, "012345678", body["id_number"])
}
