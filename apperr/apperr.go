// Package apperr defines the closed error taxonomy used across the service.
// Handlers map these kinds to HTTP status codes exactly once at the boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// Internal is the catch-all for unexpected failures.
	Internal Kind = iota
	// NotFound covers missing collections, records and blobs.
	NotFound
	// InvalidInput covers malformed identifiers, wrong content types and
	// guard violations such as attaching audio twice.
	InvalidInput
	// Unauthorized covers missing or mismatched credentials.
	Unauthorized
	// Timeout covers the download wall-clock budget being exceeded.
	Timeout
	// Unavailable covers unreachable dependencies, used by the health check.
	Unavailable
)

// Error carries a kind, a human-readable detail string and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Detail returns the human-readable detail string for err. For taxonomy
// errors this is the message without the wrapped cause, so internals do not
// leak into responses unless the error itself carries them.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Msg
	}
	return err.Error()
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
