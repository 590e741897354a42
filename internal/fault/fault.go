// Package fault defines the structured error type shared by the codec
// packages.
//
// Callers branch on Kind rather than matching error strings. Use
// errors.As to extract *Error, or IsKind for the common check.
package fault

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
type Kind string

const (
	// DigestUnavailable means the payload could not be hashed and the
	// sentinel digest was used instead. It is recovered locally and never
	// returned from Encode.
	DigestUnavailable Kind = "DigestUnavailable"
	// MalformedHeader means the metadata header could not be parsed.
	MalformedHeader Kind = "MalformedHeader"
	// OutOfBounds means a composite region does not fit its destination.
	OutOfBounds Kind = "OutOfBounds"
	// InvalidImage means the input is not a decodable image of a known
	// format, or cannot hold a data region.
	InvalidImage Kind = "InvalidImage"
	// LengthMismatch means the declared content length needs more bytes
	// than the data region holds.
	LengthMismatch Kind = "LengthMismatch"
	// KeyMismatch means the stream does not start with the expected key
	// prefix.
	KeyMismatch Kind = "KeyMismatch"
	// DigestMismatch means the decoded payload does not hash to the
	// embedded digest.
	DigestMismatch Kind = "DigestMismatch"
)

// Error is the structured error returned by the codec packages.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns an error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Errorf returns an error of the given kind with a formatted message.
// The %w verb is not interpreted; use Wrap to attach a cause.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind caused by cause. A nil cause
// behaves like New.
func Wrap(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of the outermost *Error in err's chain, or ""
// if there is none.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
