package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNotFound matches a 404 from the report API.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches a 401, i.e. the remote session credential is gone.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the report API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string // taken from the error payload when present
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// Message extracts the server-provided message from err, or "" when err does
// not carry one.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	blob, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    payloadMessage(blob),
	}
}

// payloadMessage pulls "error", "message" or "detail" out of a JSON error body.
func payloadMessage(blob []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(blob, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	if strings.TrimSpace(payload.Message) != "" {
		return strings.TrimSpace(payload.Message)
	}
	return strings.TrimSpace(payload.Detail)
}
