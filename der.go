// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package der implements the identifier model and error taxonomy shared by
// the packages of this module, which together implement the Distinguished
// Encoding Rules (DER) of ASN.1 as defined in [Rec. ITU-T X.690].
//
// DER is the canonical subset of the Basic Encoding Rules: every value has
// exactly one valid encoding. The packages of this module reject any input
// that is not in canonical form.
//
// # Packages
//
// The module is organized in layers:
//
//   - Package der (this package) defines [Identifier], [Class] and [Error].
//   - Package [codello.dev/der/tlv] implements the syntax layer. It parses
//     untrusted bytes into a tree of nodes and writes nodes back into bytes.
//   - Package [codello.dev/der/codec] implements the semantics of the ASN.1
//     types on top of the syntax layer.
//
// A typical decode looks like this:
//
//	node, err := tlv.Parse(data)
//	if err != nil {
//		return err
//	}
//	i, err := codec.DecodeInteger(node)
//
// Encoding goes through a [codello.dev/der/tlv.Writer]:
//
//	data, err := tlv.Serialize(codec.NewInteger(42))
//
// # Errors
//
// All functions of this module that can fail return errors that carry an
// [ErrorCode]. Use [errors.Is] with one of the sentinel errors, or [CodeOf], to
// check the category of an error.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package der

import (
	"strconv"
	"strings"
)

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Identifier identifies the type of an encoded data value. It consists of a
// tag class and a tag number. Two identifiers are equal if both their fields
// are equal, so Identifier values can be compared with ==.
//
// Whether a data value uses the primitive or constructed encoding is not part
// of its identifier.
type Identifier struct {
	Class  Class
	Number uint64
}

// Universal returns the identifier for the universal tag number n.
func Universal(n uint64) Identifier {
	return Identifier{ClassUniversal, n}
}

// Application returns the identifier for the application tag number n.
func Application(n uint64) Identifier {
	return Identifier{ClassApplication, n}
}

// ContextSpecific returns the identifier for the context-specific tag number n.
func ContextSpecific(n uint64) Identifier {
	return Identifier{ClassContextSpecific, n}
}

// Private returns the identifier for the private tag number n.
func Private(n uint64) Identifier {
	return Identifier{ClassPrivate, n}
}

// String returns a string representation of id in a format similar to the one
// used in ASN.1 notation. The tag number is enclosed by square brackets and
// prefixed with the class used. To avoid ambiguity the UNIVERSAL word is used
// for universal tags, although this is not valid ASN.1 syntax.
func (id Identifier) String() string {
	if id.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(id.Number, 10) + "]"
	}
	return "[" + strings.ToUpper(id.Class.String()) + " " + strconv.FormatUint(id.Number, 10) + "]"
}

// These are the ASN.1 tag numbers defined in the [ClassUniversal] namespace
// that this module knows about. These assignments are defined in Rec. ITU-T
// X.680, Section 8, Table 1.
const (
	TagBoolean         uint64 = 1
	TagInteger         uint64 = 2
	TagBitString       uint64 = 3
	TagOctetString     uint64 = 4
	TagNull            uint64 = 5
	TagOID             uint64 = 6
	TagReal            uint64 = 9
	TagEnumerated      uint64 = 10
	TagUTF8String      uint64 = 12
	TagSequence        uint64 = 16
	TagSet             uint64 = 17
	TagNumericString   uint64 = 18
	TagPrintableString uint64 = 19
	TagTeletexString   uint64 = 20
	TagVideotexString  uint64 = 21
	TagIA5String       uint64 = 22
	TagUTCTime         uint64 = 23
	TagGeneralizedTime uint64 = 24
	TagGraphicString   uint64 = 25
	TagVisibleString   uint64 = 26
	TagGeneralString   uint64 = 27
	TagUniversalString uint64 = 28
	TagBMPString       uint64 = 30
)
