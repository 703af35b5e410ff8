package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is a non-2xx backend response. Message carries the backend's
// human-readable message when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
}

// IsStatus reports whether err is a backend error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// ErrorMessage returns the backend-provided message from err, or fallback when
// err carries none (transport failures, empty bodies).
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// decodeError reads a non-2xx response body. The backend sends JSON bodies
// whose message field is either a string or a list of validation strings.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return apiErr
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		apiErr.Message = single
		return apiErr
	}

	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil && len(many) > 0 {
		apiErr.Message = strings.Join(many, "; ")
	}
	return apiErr
}
