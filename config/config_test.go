package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://xyz.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg := Load()
	require.Equal(t, "https://xyz.supabase.co", cfg.Supabase.URL)
	require.Equal(t, "building_documents", cfg.Supabase.Bucket)
	require.Equal(t, 30*time.Second, cfg.Supabase.Timeout)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.False(t, cfg.Assignments.StrictTransitions)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://xyz.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_TIMEOUT_SECONDS", "5")
	t.Setenv("SUPABASE_BUCKET", "other_bucket")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ASSIGNMENTS_STRICT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	require.Equal(t, 5*time.Second, cfg.Supabase.Timeout)
	require.Equal(t, "other_bucket", cfg.Supabase.Bucket)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, "redis:6379", cfg.Redis.Addr)
	require.True(t, cfg.Assignments.StrictTransitions)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("SUPABASE_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("REDIS_DB", "also-not")

	cfg := Load()
	require.Equal(t, 30*time.Second, cfg.Supabase.Timeout)
	require.Equal(t, 0, cfg.Redis.DB)
}
