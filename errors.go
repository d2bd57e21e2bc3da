package ymlz

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for the failure categories a load can report. Every
// error returned by this package matches exactly one of them under
// [errors.Is].
var (
	// ErrSourceUnavailable wraps the failure to open the source.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnexpectedEndOfInput reports that the document ran out while
	// the schema still expected a field.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)

// A MalformedLineError reports a line that does not fit the expected
// shape: too short for its indent, missing the ':' delimiter, an empty
// key, or a sequence item without its "- " marker.
type MalformedLineError struct {
	Lno    int
	Line   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%d: malformed line: %s", e.Lno, e.Reason)
}

// A NumericParseError reports a scalar payload that is not a valid
// number for the target field, including overflow of the target width.
type NumericParseError struct {
	Lno   int
	Field string
	Text  string
	Bits  int
	err   error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("%d: field %s: invalid number %q", e.Lno, e.Field, e.Text)
}

func (e *NumericParseError) Unwrap() error { return e.err }

// An UnsupportedKindError reports a schema field whose kind the decoder
// set does not recognize. It is an authoring defect in the schema, not a
// problem with the document, and is detected at the first affected
// field.
type UnsupportedKindError struct {
	Field string
	Type  reflect.Type
}

func (e *UnsupportedKindError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("unsupported schema kind for field %s: %s", e.Field, e.Type)
	}
	return fmt.Sprintf("unsupported schema kind for field %s", e.Field)
}

// A CursorProtocolError is the panic payload raised when pushback is
// invoked without a matching read. It indicates a bug in the decoder
// itself and is never returned from the API.
type CursorProtocolError struct {
	Op string
}

func (e *CursorProtocolError) Error() string {
	return fmt.Sprintf("cursor protocol violation: %s", e.Op)
}
