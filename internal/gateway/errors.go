package gateway

import (
	"errors"
	"fmt"

	"github.com/atlasgrid/command-center/pkg/models"
)

// Error is a classified gateway failure. Every failed Invoke returns one,
// so callers can branch on Kind without string matching.
type Error struct {
	Kind       models.ErrorKind
	HTTPStatus int // 0 when the failure happened below HTTP
	Err        error
}

func (e *Error) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("gateway: %s (status %d): %v", e.Kind, e.HTTPStatus, e.Err)
	}
	return fmt.Sprintf("gateway: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable is always false: the gateway is a metered, paid resource and a
// duplicate call would duplicate cost. The user must re-submit.
func (e *Error) Retryable() bool { return false }

// KindOf extracts the classification from an Invoke error. Unclassified
// errors map to the unexpected kind so no failure escapes the taxonomy.
func KindOf(err error) models.ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return models.ErrKindUnexpected
}

// StatusOf extracts the HTTP status from an Invoke error, 0 if unknown.
func StatusOf(err error) int {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.HTTPStatus
	}
	return 0
}
