package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"vaadbayit/config"
)

// Storage wraps the object-storage interface for the configured bucket.
type Storage struct {
	http   *resty.Client
	cfg    config.SupabaseConfig
	logger *zap.Logger
	tokens TokenSource
}

// NewStorage creates a storage client for cfg.Bucket.
func NewStorage(cfg config.SupabaseConfig, logger *zap.Logger) *Storage {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/") + "/storage/v1").
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey)

	return &Storage{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
}

// SetTokenSource wires the auth client in (uploads run as the signed-in user).
func (s *Storage) SetTokenSource(ts TokenSource) { s.tokens = ts }

func (s *Storage) bearer(ctx context.Context) string {
	if s.tokens != nil {
		if tok := s.tokens.AccessToken(ctx); tok != "" {
			return tok
		}
	}
	return s.cfg.AnonKey
}

// Upload stores data at path inside the bucket.
func (s *Storage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(s.bearer(ctx)).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post("/object/" + s.cfg.Bucket + "/" + path)
	if err != nil {
		s.logger.Error("storage upload failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("storage upload %s: %w", path, err)
	}
	if resp.IsError() {
		apiErr := decodeAPIError(resp.StatusCode(), resp.Body())
		s.logger.Error("storage upload rejected",
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	return nil
}

// Remove deletes the given object paths from the bucket.
func (s *Storage) Remove(ctx context.Context, paths []string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(s.bearer(ctx)).
		SetHeader("Content-Type", acceptJSON).
		SetBody(map[string][]string{"prefixes": paths}).
		Delete("/object/" + s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("storage remove: %w", err)
	}
	if resp.IsError() {
		return decodeAPIError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// PublicURL returns the public download URL for an object path.
func (s *Storage) PublicURL(path string) string {
	return strings.TrimRight(s.cfg.URL, "/") + "/storage/v1/object/public/" + s.cfg.Bucket + "/" + path
}
