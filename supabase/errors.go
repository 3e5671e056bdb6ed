package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
)

// codeNoRows PostgREST code returned when a single-object request matched
// zero rows.
const codeNoRows = "PGRST116"

// APIError remote operation failure reported by the backend
// (PostgREST, GoTrue or the storage API). The original backend message is
// preserved for diagnostics; callers wrap it with their own message.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (code %s, http %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("supabase: %s (http %d)", e.Message, e.StatusCode)
}

// IsNoRows reports whether err is the zero-rows single-object error.
func IsNoRows(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == codeNoRows
}

// decodeAPIError builds an APIError from a non-2xx response body.
// GoTrue uses different field names than PostgREST, so all known shapes are
// tried before falling back to the raw body.
func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	if apiErr.Message == "" {
		var authErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
			Msg         string `json:"msg"`
		}
		if err := json.Unmarshal(body, &authErr); err == nil {
			switch {
			case authErr.Msg != "":
				apiErr.Message = authErr.Msg
			case authErr.Description != "":
				apiErr.Message = authErr.Description
			case authErr.Error != "":
				apiErr.Message = authErr.Error
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}
