// Package supabase wraps the hosted backend's REST surfaces: the PostgREST
// table interface, the GoTrue auth interface, the object-storage interface
// and the RPC interface. Everything above this package talks to the backend
// through these clients only.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"vaadbayit/config"
)

const (
	acceptJSON   = "application/json"
	acceptSingle = "application/vnd.pgrst.object+json"
)

// TokenSource supplies the caller's access token for row-level security.
// An empty token means "not signed in"; requests then carry the anon key.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Client performs PostgREST table and RPC calls.
type Client struct {
	http   *resty.Client
	cfg    config.SupabaseConfig
	logger *zap.Logger
	tokens TokenSource
}

// NewClient creates a table client. Operations are never retried: a failed
// call surfaces to the caller, matching the application's failure semantics.
func NewClient(cfg config.SupabaseConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/") + "/rest/v1").
		SetTimeout(timeout).
		SetHeader("Content-Type", acceptJSON).
		SetHeader("Accept", acceptJSON).
		SetHeader("apikey", cfg.AnonKey)

	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
}

// SetTokenSource wires the auth client in; requests made afterwards carry the
// current user's token when one exists.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

func (c *Client) bearer(ctx context.Context) string {
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(ctx); tok != "" {
			return tok
		}
	}
	return c.cfg.AnonKey
}

// Select fetches rows matching q into dest (pointer to slice).
func (c *Client) Select(ctx context.Context, table string, q *Query, dest any) error {
	return c.do(ctx, "GET", "/"+url.PathEscape(table), q, nil, nil, dest)
}

// SelectSingle fetches exactly one row into dest; zero rows is an error.
func (c *Client) SelectSingle(ctx context.Context, table string, q *Query, dest any) error {
	headers := map[string]string{"Accept": acceptSingle}
	return c.do(ctx, "GET", "/"+url.PathEscape(table), q, headers, nil, dest)
}

// SelectMaybe fetches at most one row into dest. Returns false (not an
// error) when no row matched.
func (c *Client) SelectMaybe(ctx context.Context, table string, q *Query, dest any) (bool, error) {
	err := c.SelectSingle(ctx, table, q, dest)
	if err != nil {
		if IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert inserts one row and decodes the created row into dest when non-nil.
func (c *Client) Insert(ctx context.Context, table string, row any, dest any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	if dest != nil {
		headers["Accept"] = acceptSingle
	} else {
		headers["Prefer"] = "return=minimal"
	}
	return c.do(ctx, "POST", "/"+url.PathEscape(table), nil, headers, row, dest)
}

// Upsert inserts-or-merges one row keyed by onConflict, decoding the stored
// row into dest when non-nil.
func (c *Client) Upsert(ctx context.Context, table string, row any, onConflict string, dest any) error {
	headers := map[string]string{"Prefer": "return=representation,resolution=merge-duplicates"}
	if dest != nil {
		headers["Accept"] = acceptSingle
	}
	path := "/" + url.PathEscape(table) + "?on_conflict=" + url.QueryEscape(onConflict)
	return c.do(ctx, "POST", path, nil, headers, row, dest)
}

// UpdateSingle patches the rows matching q and decodes the (single) updated
// row into dest. Zero matched rows is an error (IsNoRows).
func (c *Client) UpdateSingle(ctx context.Context, table string, patch any, q *Query, dest any) error {
	headers := map[string]string{
		"Prefer": "return=representation",
		"Accept": acceptSingle,
	}
	return c.do(ctx, "PATCH", "/"+url.PathEscape(table), q, headers, patch, dest)
}

// Update patches the rows matching q, decoding updated rows into dest
// (pointer to slice) when non-nil. Zero matched rows yields an empty slice,
// which is how conditional updates detect a lost race.
func (c *Client) Update(ctx context.Context, table string, patch any, q *Query, dest any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	if dest == nil {
		headers["Prefer"] = "return=minimal"
	}
	return c.do(ctx, "PATCH", "/"+url.PathEscape(table), q, headers, patch, dest)
}

// Delete removes the rows matching q.
func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	return c.do(ctx, "DELETE", "/"+url.PathEscape(table), q, nil, nil, nil)
}

// RPC invokes a named backend function with args, decoding the result into
// dest when non-nil.
func (c *Client) RPC(ctx context.Context, fn string, args any, dest any) error {
	return c.do(ctx, "POST", "/rpc/"+url.PathEscape(fn), nil, nil, args, dest)
}

func (c *Client) do(ctx context.Context, method, path string, q *Query, headers map[string]string, body any, dest any) error {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.bearer(ctx))
	if q != nil {
		req.SetQueryString(q.Encode())
	}
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("supabase request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("supabase %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := decodeAPIError(resp.StatusCode(), resp.Body())
		c.logger.Error("supabase operation rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
			zap.String("code", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	if dest != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), dest); err != nil {
			return fmt.Errorf("decode supabase response: %w", err)
		}
	}
	return nil
}
