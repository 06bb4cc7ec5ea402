package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrUnterminatedPattern = NewError("unterminated pattern block")
	ErrDanglingEndPattern  = NewError("end-pattern outside a pattern block")
	ErrNestedPattern       = NewError("pattern blocks cannot nest")
	ErrDuplicatePattern    = NewError("duplicate pattern name")
	ErrInvalidIdentifier   = NewError("invalid identifier")
	ErrUnknownDirective    = NewError("unknown directive")
	ErrMalformedInclude    = NewError("malformed include directive")
	ErrMissingInclude      = NewError("required include not found")
	ErrCircularInclude     = NewError("circular include chain")
	ErrReadInclude         = NewError("failed to read include")
	ErrIncludeDepth        = NewError("maximum include depth exceeded")
	ErrMissingValue        = NewError("missing required value")
	ErrUnknownPattern      = NewError("unknown pattern")

	// ErrNotFound is returned by a [Source] whose path does not resolve to
	// any template text. It is the only read failure an optional include
	// may swallow.
	ErrNotFound = NewError("template not found")
)

// Error represents an engine error with optional structured logging
// attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	base  *Error      // originating sentinel (for errors.Is)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is this error or the sentinel it derives from.
// Errors returned by [Error.With], [Error.Wrap], and [Error.WithPosition]
// still match their originating sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	if target == error(e) {
		return true
	}

	return e.base != nil && target == error(e.base)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		base:  e.sentinel(),
		attrs: e.attrs, // share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  e.sentinel(),
		attrs: newAttrs,
	}
}

// WithPosition adds the source position of the offending construct.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)
}

func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Position identifies a location in template source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in bytes, starting at 1
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
