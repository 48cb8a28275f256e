package session

import (
	"errors"
	"fmt"

	"crickmart/internal/api"
)

// AuthErrorKind classifies authentication failures for the UI.
type AuthErrorKind string

const (
	// KindInvalidCredentials covers rejected logins.
	KindInvalidCredentials AuthErrorKind = "invalid_credentials"
	// KindValidation covers registration or profile-update payloads the
	// backend rejected, with field errors passed through unmodified.
	KindValidation AuthErrorKind = "validation"
	// KindRemote covers any other backend failure.
	KindRemote AuthErrorKind = "remote"
)

// AuthError is a recoverable authentication failure. It never crashes
// navigation; pages render it as an inline, retryable notice.
type AuthError struct {
	Kind   AuthErrorKind
	Fields []api.FieldError
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// classify wraps a backend error as an AuthError, preserving field errors.
func classify(err error, invalidOnUnauthorized bool) *AuthError {
	var remoteErr *api.RemoteError
	if errors.As(err, &remoteErr) {
		if invalidOnUnauthorized && remoteErr.Status == 401 {
			return &AuthError{Kind: KindInvalidCredentials, Err: err}
		}
		if len(remoteErr.Fields) > 0 {
			return &AuthError{Kind: KindValidation, Fields: remoteErr.Fields, Err: err}
		}
	}
	return &AuthError{Kind: KindRemote, Err: err}
}
