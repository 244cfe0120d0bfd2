package scrape

import (
	"errors"
	"fmt"
)

// ErrNotFound means the requested page does not exist. For listing pages this
// is the normal end-of-pagination signal, not a failure.
var ErrNotFound = errors.New("page not found")

// ErrBlocked means the source site refused the request (rate limited or
// forbidden). It is never retried; an import run aborts immediately.
var ErrBlocked = errors.New("request blocked by source site")

// TransientError wraps a failure that is eligible for bounded retry:
// timeouts, connection errors, and 5xx responses.
type TransientError struct {
	Status int // HTTP status, 0 for transport-level failures
	Err    error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transient fetch failure (status %d): %v", e.Status, e.Err)
	}

	return fmt.Sprintf("transient fetch failure: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError

	return errors.As(err, &te)
}

// MalformedPageError means a page was fetched but its expected structural
// anchors are absent. The importer treats this as a skippable entry, never
// as a fatal run error.
type MalformedPageError struct {
	Anchor string
}

// Error implements the error interface.
func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page: missing %s", e.Anchor)
}

// IsMalformed reports whether err is (or wraps) a MalformedPageError.
func IsMalformed(err error) bool {
	var me *MalformedPageError

	return errors.As(err, &me)
}
