// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"strings"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A bit string is padded up to
// the nearest byte in memory and the number of valid bits is recorded. Padding
// bits must be zero.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes     []byte // bits packed into bytes.
	BitLength int    // length in bits.
}

// NewBitString returns a BitString holding the bytes b of which the last
// padding bits are unused. padding must be between 0 and 7, it must be 0 if b
// is empty, and the unused bits must be zero.
func NewBitString(b []byte, padding int) (BitString, error) {
	s := BitString{b, 8*len(b) - padding}
	if err := s.validate(padding); err != nil {
		return BitString{}, err
	}
	return s, nil
}

// IsValid reports whether s can be encoded, that is whether s.Bytes holds
// exactly the bytes needed for BitLength bits and all padding bits are zero.
func (s BitString) IsValid() bool {
	return s.BitLength >= 0 && len(s.Bytes) == (s.BitLength+8-1)/8 && s.validate(s.padding()) == nil
}

// padding returns the number of unused bits in the last byte of s.
func (s BitString) padding() int {
	return 8*len(s.Bytes) - s.BitLength
}

// validate checks the DER rules for a bit string with the given number of
// padding bits.
func (s BitString) validate(padding int) error {
	if padding < 0 || padding > 7 {
		return der.Errorf(der.CodeInvalidObject, "invalid padding %d", padding)
	}
	if len(s.Bytes) == 0 {
		if padding != 0 {
			return der.Errorf(der.CodeInvalidObject, "padding %d for empty bit string", padding)
		}
		return nil
	}
	if s.Bytes[len(s.Bytes)-1]&(1<<padding-1) != 0 {
		return der.Errorf(der.CodeInvalidObject, "non-zero padding bits")
	}
	return nil
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return s.BitLength
}

// At returns the bit at the given index. If the index is out of range At panics.
func (s BitString) At(i int) int {
	if i < 0 || i >= s.BitLength {
		panic("index out of range")
	}
	x := i / 8
	y := 7 - uint(i%8)
	return int(s.Bytes[x]>>y) & 1
}

// String formats s as a sequence of '0' and '1' characters.
func (s BitString) String() string {
	var b strings.Builder
	b.Grow(s.BitLength)
	for i := range s.BitLength {
		b.WriteByte(byte('0' + s.At(i)))
	}
	return b.String()
}

// SerializeDER writes s. If s is not valid an error is returned.
func (s BitString) SerializeDER(w *tlv.Writer) error {
	if s.BitLength < 0 || len(s.Bytes) != (s.BitLength+8-1)/8 {
		return der.Errorf(der.CodeInvalidObject, "%d bytes for a bit string of %d bits", len(s.Bytes), s.BitLength)
	}
	padding := s.padding()
	if err := s.validate(padding); err != nil {
		return err
	}
	content := make([]byte, 1, 1+len(s.Bytes))
	content[0] = byte(padding)
	w.WritePrimitive(der.Universal(der.TagBitString), append(content, s.Bytes...))
	return nil
}

// DecodeBitString decodes a BIT STRING from n. The returned value shares
// memory with n.
func DecodeBitString(n tlv.Node) (BitString, error) {
	data, err := primitive(n, der.Universal(der.TagBitString))
	if err != nil {
		return BitString{}, err
	}
	if len(data) == 0 {
		return BitString{}, der.Errorf(der.CodeInvalidObject, "empty bit string")
	}
	return NewBitString(data[1:], int(data[0]))
}

//endregion
