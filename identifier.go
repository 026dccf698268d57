// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"github.com/cockroachdb/errors"

	"codello.dev/der/internal/vlq"
)

const (
	classBits       = 0xC0
	constructedBit  = 0x20
	numberBits      = 0x1F
	longFormMarker  = 0x1F
	maxShortFormTag = 30
)

// ShortForm returns the single identifier octet for id. The second return
// value is false if id requires the long form, that is if its tag number is 31
// or larger. ShortForm panics if id.Class is not valid.
func (id Identifier) ShortForm(constructed bool) (byte, bool) {
	mustBeValid(id.Class)
	if id.Number > maxShortFormTag {
		return 0, false
	}
	b := byte(id.Class)<<6 | byte(id.Number)
	if constructed {
		b |= constructedBit
	}
	return b, true
}

// mustBeValid panics if c cannot be encoded in the two class bits.
func mustBeValid(c Class) {
	if !c.IsValid() {
		panic("der: invalid class " + c.String())
	}
}

// IdentifierFromShortForm is the inverse of [Identifier.ShortForm]. An octet
// whose tag number bits are all set is the long form marker and cannot be
// converted into an identifier on its own.
func IdentifierFromShortForm(b byte) (id Identifier, constructed bool, err error) {
	if b&numberBits == longFormMarker {
		return Identifier{}, false, Errorf(CodeInvalidObject, "identifier octet %#02x is a long form marker", b)
	}
	id = Identifier{Class(b >> 6), uint64(b & numberBits)}
	return id, b&constructedBit != 0, nil
}

// IdentifierSize returns the number of bytes [AppendIdentifier] appends for id.
func IdentifierSize(id Identifier) int {
	if id.Number <= maxShortFormTag {
		return 1
	}
	return 1 + vlq.Size(id.Number)
}

// AppendIdentifier appends the identifier octets of id to dst and returns the
// extended buffer. Tag numbers below 31 use the short form, all others the long
// form. AppendIdentifier panics if id.Class is not valid.
func AppendIdentifier(dst []byte, id Identifier, constructed bool) []byte {
	if b, ok := id.ShortForm(constructed); ok {
		return append(dst, b)
	}
	b := byte(id.Class)<<6 | longFormMarker
	if constructed {
		b |= constructedBit
	}
	dst = append(dst, b)
	return vlq.Append(dst, id.Number)
}

// ReadIdentifier decodes the identifier octets at the start of b. It returns
// the identifier, whether the constructed bit is set, and the number of bytes
// read. ReadIdentifier rejects long form identifiers that are not minimally
// encoded or whose tag number would fit into the short form.
func ReadIdentifier(b []byte) (id Identifier, constructed bool, n int, err error) {
	if len(b) == 0 {
		return Identifier{}, false, 0, Errorf(CodeTruncatedField, "missing identifier")
	}
	if b[0]&numberBits != longFormMarker {
		id, constructed, err = IdentifierFromShortForm(b[0])
		return id, constructed, 1, err
	}
	id.Class = Class(b[0] >> 6)
	constructed = b[0]&constructedBit != 0
	number, l, err := vlq.ReadMinimal[uint64](b[1:])
	switch {
	case errors.Is(err, vlq.ErrTruncated):
		return Identifier{}, false, 0, Errorf(CodeTruncatedField, "truncated long form tag number")
	case errors.Is(err, vlq.ErrNotMinimal):
		return Identifier{}, false, 0, Errorf(CodeInvalidObject, "long form tag number is not minimally encoded")
	case errors.Is(err, vlq.ErrOverflow):
		return Identifier{}, false, 0, Errorf(CodeInvalidObject, "tag number overflows 64 bits")
	case err != nil:
		return Identifier{}, false, 0, err
	}
	if number <= maxShortFormTag {
		return Identifier{}, false, 0, Errorf(CodeInvalidObject, "tag number %d uses the long form", number)
	}
	id.Number = number
	return id, constructed, 1 + l, nil
}
