package geometry

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a recoverable failure returned from a factory or
// conversion routine. Programmer errors (bad indices, negative
// dimensions, division by zero) are never represented this way; those
// panic instead, per the package's error-handling split.
type ErrorKind int

const (
	// InvalidArgument indicates malformed input: bad sizes, out-of-range
	// indices, empty outlines, format mismatches.
	InvalidArgument ErrorKind = iota
	// FailedPrecondition indicates input that is well-formed but violates
	// a numeric precondition, e.g. a non-finite value or an out-of-range
	// attribute.
	FailedPrecondition
	// Internal indicates an internal algorithm failure, e.g. a
	// tessellator that could not produce a triangulation.
	Internal
	// NotFound indicates a referenced external resource does not exist.
	NotFound
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case FailedPrecondition:
		return "FailedPrecondition"
	case Internal:
		return "Internal"
	case NotFound:
		return "NotFound"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a recoverable failure tagged with an ErrorKind, so callers can
// distinguish malformed input from an internal failure without parsing
// message text.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.msg) }

// NewError constructs an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, msg: fmt.Sprintf(format, args...)})
}

// KindOf reports the ErrorKind carried by err, and whether err (or
// something it wraps) is a *geometry.Error at all.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
