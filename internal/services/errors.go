package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/snapup/internal/shared"
)

const (
	DefaultUploadError = "upload failed"
	DefaultSignupError = "signup failed"
)

// APIError is returned for a non-2xx response.
//
// Error() yields only Detail so callers can display it verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// Unwrap lets errors.Is match [shared.ErrAPIRequest].
func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// String includes the status code, for logs.
func (e *APIError) String() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

// newAPIError builds an [APIError] from a response body, using its "detail" string when present.
//
// FastAPI validation errors carry a list in "detail"; those fall back to fallback.
func newAPIError(status int, body []byte, fallback string) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}

	detail := fallback
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			detail = s
		}
	}

	return &APIError{StatusCode: status, Detail: detail}
}
