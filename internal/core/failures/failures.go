// Package failures defines the closed set of outcomes a command can fail with.
//
// Every expected failure returned by the core is an *Error carrying one of the
// Kind values below. Callers classify with KindOf and switch on the result;
// anything that is not an *Error is a defect and classifies as KindInternal.
package failures

import (
	"errors"
	"fmt"
)

// Kind classifies a command failure.
type Kind int

const (
	// KindNone is returned by KindOf for a nil error.
	KindNone Kind = iota
	// KindValidation covers bad input: invalid content, unknown author or user.
	KindValidation
	// KindNotFound means the target entity is absent under the current projection.
	KindNotFound
	// KindForbidden means the caller may not act on the target.
	KindForbidden
	// KindStore wraps an event log read or append failure. It may be transient
	// but is never retried by the core.
	KindStore
	// KindInternal is anything unclassified.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindStore:
		return "store"
	default:
		return "internal"
	}
}

// Error is a classified failure. Sentinels are compared by identity, so
// errors.Is(err, posts.ErrNotFound) works through any amount of wrapping.
type Error struct {
	Kind    Kind
	Code    string // stable machine-readable name, e.g. "PostNotFound"
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a classified sentinel.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// ErrStoreFailure is the sentinel every event log error is wrapped in.
var ErrStoreFailure = New(KindStore, "StoreFailure", "event log failure")

// Store wraps an event log error so it classifies as KindStore while keeping
// the original cause reachable through errors.Is/As.
func Store(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// CodeOf returns the Code of the classified error in err's chain, or
// "InternalServerError" for unclassified errors.
func CodeOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return "InternalServerError"
}
