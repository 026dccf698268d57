// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorCode classifies the errors returned by this module.
//
//go:generate stringer -type=ErrorCode -trimprefix=Code
type ErrorCode uint8

// These are the predefined error codes.
const (
	// CodeUnknown is used for errors that do not originate from this module.
	CodeUnknown ErrorCode = iota
	// CodeUnexpectedFieldType indicates an identifier or encoding that does
	// not match what a decoder expected.
	CodeUnexpectedFieldType
	// CodeInvalidObject indicates malformed or non-canonical contents.
	CodeInvalidObject
	// CodeInvalidIntegerEncoding indicates an INTEGER with a redundant leading
	// byte. It is a special case of CodeInvalidObject.
	CodeInvalidIntegerEncoding
	// CodeTruncatedField indicates that the input ended before a declared
	// length.
	CodeTruncatedField
	// CodeUnsupportedFieldLength indicates indefinite or non-minimal lengths.
	CodeUnsupportedFieldLength
	// CodeInvalidStringRepresentation indicates a character set or format
	// violation in a string or time value.
	CodeInvalidStringRepresentation
	// CodeTooFewOIDComponents indicates an OBJECT IDENTIFIER with less than
	// two arcs.
	CodeTooFewOIDComponents
	// CodeValueOutOfRange indicates a value that cannot be represented by the
	// target type.
	CodeValueOutOfRange
)

// Error is the error type returned by the packages of this module. Callers
// usually do not inspect an Error directly but use [errors.Is] with one of the
// sentinel errors below.
type Error struct {
	Code   ErrorCode
	Reason string
}

// Error returns a string of the form "der: <code>: <reason>".
func (e *Error) Error() string {
	if e.Reason == "" {
		return "der: " + e.Code.String()
	}
	return "der: " + e.Code.String() + ": " + e.Reason
}

// Is reports whether target is an *Error with the same code as e. If target has
// a non-empty Reason, the reasons must match as well. A target with
// [CodeInvalidObject] also matches errors with [CodeInvalidIntegerEncoding].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code && (t.Code != CodeInvalidObject || e.Code != CodeInvalidIntegerEncoding) {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinel errors for use with [errors.Is]. Each of them matches all errors of
// the respective code.
var (
	ErrUnexpectedFieldType         = &Error{Code: CodeUnexpectedFieldType}
	ErrInvalidObject               = &Error{Code: CodeInvalidObject}
	ErrInvalidIntegerEncoding      = &Error{Code: CodeInvalidIntegerEncoding}
	ErrTruncatedField              = &Error{Code: CodeTruncatedField}
	ErrUnsupportedFieldLength      = &Error{Code: CodeUnsupportedFieldLength}
	ErrInvalidStringRepresentation = &Error{Code: CodeInvalidStringRepresentation}
	ErrTooFewOIDComponents         = &Error{Code: CodeTooFewOIDComponents}
	ErrValueOutOfRange             = &Error{Code: CodeValueOutOfRange}
)

// Errorf returns a new error of the given code. The reason is formatted
// according to format. The returned error carries a stack trace of the caller.
func Errorf(code ErrorCode, format string, args ...any) error {
	return errors.WithStackDepth(&Error{Code: code, Reason: fmt.Sprintf(format, args...)}, 1)
}

// CodeOf returns the code of the first *Error in the chain of err. If err is
// nil, CodeOf returns CodeUnknown as well.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
