// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Implements the arcerr package.

// Package arcerr classifies archive failures into a small, closed set of
// kinds so that callers can react to WHAT went wrong (unsupported format,
// corrupt stream, missing entry) without matching on error strings or on
// the concrete errors of the underlying codec libraries.
//
// The kind set is intentionally closed. Extensions should be done by
// wrapping one of these kinds with a more specific error, not by adding
// new kinds.
package arcerr

import (
	"errors"
	"fmt"
)

// A SentinelError is a constant which ought to be compared using errors.Is.
type SentinelError string

// Error returns s as a string.
func (s SentinelError) Error() string {
	return string(s)
}

// Kind is a high-level bucket for an archive failure.
type Kind int

// Note: keep Unknown as zero so a zero value is never mistaken for an
// affirmatively chosen kind.
const (
	// UnsupportedFormat means the archive type is not recognized or the
	// requested operation is not available for it. Not retriable; the
	// caller must choose another format or path.
	UnsupportedFormat Kind = iota + 1

	// InvalidArchive means the input was rejected before extraction
	// began, e.g. a path with no extension.
	InvalidArchive

	// IO is a filesystem access failure, propagated from the platform.
	IO

	// Codec means the compressed or container stream could not be
	// decoded or encoded, e.g. corrupt or truncated input.
	Codec

	// EntryNotFound means a requested relative path is not in the
	// session's tracked file list.
	EntryNotFound

	// Corrupted means structural validation of an archive failed.
	Corrupted

	// ResourceLimit means a size guard tripped, e.g. the decompressed
	// output exceeded a configured budget.
	ResourceLimit

	// Other is the escape hatch for wrapped lower-level failures that
	// fit no bucket above.
	Other
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported_format"
	case InvalidArchive:
		return "invalid_archive"
	case IO:
		return "io"
	case Codec:
		return "codec"
	case EntryNotFound:
		return "entry_not_found"
	case Corrupted:
		return "corrupted"
	case ResourceLimit:
		return "resource_limit"
	case Other:
		return "other"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error attaches a Kind to an underlying cause. The message is the
// cause's message; the kind is classification metadata, retrieved with
// KindOf rather than rendered into the string.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the inner error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind.
//
// For convenience, if err is nil, this function returns nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Newf creates a new error of the given kind from a format string.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf walks err's chain and returns the kind of the outermost
// *Error found. Unclassified errors report Other; a nil err reports
// the zero Kind.
func KindOf(err error) Kind {
	if err == nil {
		return Kind(0)
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// IsKind reports whether err's chain contains the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
