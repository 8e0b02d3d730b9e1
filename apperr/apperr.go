// Package apperr defines the error taxonomy every layer maps into:
// validation failures are field-scoped and recoverable by the user,
// missing auth is a sign-in prompt rather than a failure, external
// service errors are terminal for the request and never leak detail,
// and deleting something already gone is success.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAuthRequired means a write was attempted without a signed-in
	// user. Surfaced as a sign-in prompt, not a failure toast.
	ErrAuthRequired = errors.New("sign-in required")

	// ErrNotFound marks a referenced record as absent. Deletes treat it
	// as already satisfied.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the caller is signed in but does not own the
	// record, e.g. deleting someone else's listing.
	ErrForbidden = errors.New("not allowed")
)

// ValidationError carries per-field failures from the submission rules.
// It blocks submission locally; no network call is made while it holds.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// ExternalServiceError wraps a failed call to the identity provider,
// document store, object store, places lookup, or geolocation. The user
// sees Message, never the wrapped cause. No retries are performed; the
// user re-triggers the action explicitly.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Message is the generic retry-suggesting text shown to the user.
func (e *ExternalServiceError) Message() string {
	return "Something went wrong. Please try again."
}

// External wraps err as an ExternalServiceError for the named service.
// Returns nil when err is nil.
func External(service string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Service: service, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError,
// returning it when so.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
