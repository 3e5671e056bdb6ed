package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/config"
)

func newTestStorage(t *testing.T) (*Storage, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Headers = r.Header.Clone()
		rec.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Key":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key", Bucket: "building_documents"}
	return NewStorage(cfg, zap.NewNop()), rec
}

func TestStorageUpload(t *testing.T) {
	storage, rec := newTestStorage(t)

	err := storage.Upload(context.Background(), "default/123_user-1.pdf", []byte("pdf-bytes"), "application/pdf")
	require.NoError(t, err)

	require.Equal(t, "POST", rec.Method)
	require.Equal(t, "/storage/v1/object/building_documents/default/123_user-1.pdf", rec.Path)
	require.Equal(t, "application/pdf", rec.Headers.Get("Content-Type"))
	require.Equal(t, []byte("pdf-bytes"), rec.Body)
}

func TestStorageUpload_DefaultContentType(t *testing.T) {
	storage, rec := newTestStorage(t)

	err := storage.Upload(context.Background(), "default/x.bin", []byte{1, 2, 3}, "")
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", rec.Headers.Get("Content-Type"))
}

func TestStorageRemove(t *testing.T) {
	storage, rec := newTestStorage(t)

	err := storage.Remove(context.Background(), []string{"default/a.pdf", "default/b.pdf"})
	require.NoError(t, err)

	require.Equal(t, "DELETE", rec.Method)
	require.Equal(t, "/storage/v1/object/building_documents", rec.Path)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	require.Equal(t, []string{"default/a.pdf", "default/b.pdf"}, body["prefixes"])
}

func TestStoragePublicURL(t *testing.T) {
	cfg := config.SupabaseConfig{URL: "https://xyz.supabase.co/", AnonKey: "anon", Bucket: "building_documents"}
	storage := NewStorage(cfg, zap.NewNop())

	require.Equal(t,
		"https://xyz.supabase.co/storage/v1/object/public/building_documents/default/a.pdf",
		storage.PublicURL("default/a.pdf"))
}
