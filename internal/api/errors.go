package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError is a single field-level validation failure reported by the
// backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RemoteError is any non-2xx outcome of a backend call. It carries the HTTP
// status and, for validation failures, the backend's field errors unmodified.
type RemoteError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote error: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote error: %d %s", e.Status, http.StatusText(e.Status))
}

// IsUnauthorized reports whether err is a RemoteError with a 401 status.
func IsUnauthorized(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.Status == http.StatusUnauthorized
}

// errorEnvelope matches the backend's structured error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			ValidationErrors []FieldError `json:"validation_errors"`
		} `json:"details"`
	} `json:"error"`
}
