// internal/app/system/evalapi/errors.go
package evalapi

import (
	"errors"
	"fmt"
)

// AuthError means the evaluation API rejected the caller: bad credentials on
// login, or an expired/invalid token on an authorized call. Callers surface
// it as a retryable form error or a forced sign-out, never as a crash.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evalapi: %s: %v", e.Message, e.Err)
	}
	return "evalapi: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError covers every other collaborator failure: network faults, non-2xx
// statuses, and payloads that fail shape validation. The dashboard degrades
// to zeroed metrics on APIError instead of failing the page.
type APIError struct {
	Status  int // HTTP status, 0 for transport-level failures
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("evalapi: %s (status %d): %v", e.Message, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("evalapi: %s (status %d)", e.Message, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("evalapi: %s: %v", e.Message, e.Err)
	default:
		return "evalapi: " + e.Message
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
