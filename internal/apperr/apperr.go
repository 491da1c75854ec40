// Package apperr defines the error taxonomy shared across the docsearch
// core, per spec.md section 7. A thin transport layer can map a Kind to a
// status code without parsing error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the benefit of an external transport layer.
type Kind string

const (
	// KindBadInput covers invalid registry entries, unknown/disabled
	// docset ids, empty queries, and path-traversal attempts.
	KindBadInput Kind = "bad_input"

	// KindNotFound covers unknown doc_refs and missing asset files.
	KindNotFound Kind = "not_found"

	// KindNotReady covers a query arriving before any index state has
	// been built and auto_index is disabled.
	KindNotReady Kind = "not_ready"

	// KindStale covers a snapshot whose schema version this build does
	// not understand, whether or not auto_index is enabled. A signature
	// mismatch with auto_index disabled is reported as KindNotReady.
	KindStale Kind = "stale"
)

// Error wraps an underlying cause with a Kind the caller can switch on.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind around an existing error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
