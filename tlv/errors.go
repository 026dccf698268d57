package tlv

import (
	"strconv"

	"codello.dev/der"
)

// Errors returned by [Parse] when the input exceeds one of the resource
// limits. Both use [der.CodeInvalidObject].
var (
	ErrTooDeep      = &der.Error{Code: der.CodeInvalidObject, Reason: "maximum nesting depth exceeded"}
	ErrTooManyNodes = &der.Error{Code: der.CodeInvalidObject, Reason: "maximum number of nodes exceeded"}
)

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Header] of the
// surrounding data value.
type SyntaxError struct {
	requireKeyedLiterals
	nonComparable

	Err error // underlying error

	// ByteOffset is the location of the error. The location is the start of the
	// TLV containing the error.
	ByteOffset int

	// Header is the TLV header of the constructed TLV whose value contained the
	// malformed data. For errors at the root level the Header is the zero value.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Header.Constructed {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), int64(e.ByteOffset), 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}
