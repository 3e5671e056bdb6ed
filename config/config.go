package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config vaadbayit SDK configuration
type Config struct {
	Supabase SupabaseConfig
	Redis    struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Assignments struct {
		// StrictTransitions enforces REQUESTED -> IN_PROGRESS -> DONE with
		// CANCELED reachable from any non-terminal state. Default false keeps
		// the historical permissive behavior (any status to any status).
		StrictTransitions bool
	}
}

// SupabaseConfig backend-as-a-service endpoint configuration
type SupabaseConfig struct {
	URL       string        // project URL, e.g. https://xyz.supabase.co
	AnonKey   string        // public anon API key
	JWTSecret string        // optional; enables local access-token verification
	Bucket    string        // object-storage bucket for building documents
	Timeout   time.Duration // per-request HTTP timeout
}

// Load reads configuration from the environment, preferring values from an
// optional .env file in the working directory (dev convenience).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Supabase.URL = getEnv("SUPABASE_URL", "")
	cfg.Supabase.AnonKey = getEnv("SUPABASE_ANON_KEY", "")
	cfg.Supabase.JWTSecret = getEnv("SUPABASE_JWT_SECRET", "")
	cfg.Supabase.Bucket = getEnv("SUPABASE_BUCKET", "building_documents")
	cfg.Supabase.Timeout = time.Duration(parseInt(getEnv("SUPABASE_TIMEOUT_SECONDS", "30"), 30)) * time.Second

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Assignments.StrictTransitions = getEnv("ASSIGNMENTS_STRICT", "false") == "true"

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
