package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindExpired
)

// Error is the taxonomy type every service returns. Message is safe to
// show to clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a 400-class error for malformed input.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a 404-class error for unknown resources.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Expired creates a 410-class error for sessions past their expiry.
func Expired(msg string) error {
	return &Error{Kind: KindExpired, Message: msg}
}

// Internal wraps an unexpected failure; the cause stays out of the response.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the taxonomy kind of err, defaulting to internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found taxonomy error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsExpired reports whether err is an expired taxonomy error.
func IsExpired(err error) bool { return KindOf(err) == KindExpired }
