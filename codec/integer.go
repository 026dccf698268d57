// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"math/big"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 2] INTEGER

var bigOne = big.NewInt(1)

// Integer represents an ASN.1 INTEGER of arbitrary size. The zero value is the
// number 0. Integer values are immutable.
//
// See also section 19 of Rec. ITU-T X.680.
type Integer struct {
	v *big.Int // nil means 0
}

// NewInteger returns the Integer with the value x.
func NewInteger(x int64) Integer {
	return Integer{big.NewInt(x)}
}

// NewBigInteger returns the Integer with the value x. x is copied.
func NewBigInteger(x *big.Int) Integer {
	return Integer{new(big.Int).Set(x)}
}

// Big returns the value of i as a newly allocated [big.Int].
func (i Integer) Big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.v)
}

// Int64 returns the value of i as an int64. If i does not fit into an int64 an
// error with [der.CodeValueOutOfRange] is returned.
func (i Integer) Int64() (int64, error) {
	if i.v == nil {
		return 0, nil
	}
	if !i.v.IsInt64() {
		return 0, der.Errorf(der.CodeValueOutOfRange, "%v does not fit into an int64", i.v)
	}
	return i.v.Int64(), nil
}

// Cmp compares i and j and returns -1, 0 or +1.
func (i Integer) Cmp(j Integer) int {
	return i.Big().Cmp(j.Big())
}

// Equal reports whether i and j have the same value.
func (i Integer) Equal(j Integer) bool {
	return i.Cmp(j) == 0
}

// String returns the decimal representation of i.
func (i Integer) String() string {
	return i.Big().String()
}

// SerializeDER writes i using the minimal two's complement representation.
func (i Integer) SerializeDER(w *tlv.Writer) error {
	w.WritePrimitive(der.Universal(der.TagInteger), appendInteger(nil, i.Big()))
	return nil
}

// DecodeInteger decodes an INTEGER from n.
func DecodeInteger(n tlv.Node) (Integer, error) {
	data, err := primitive(n, der.Universal(der.TagInteger))
	if err != nil {
		return Integer{}, err
	}
	v, err := parseInteger(data)
	if err != nil {
		return Integer{}, err
	}
	return Integer{v}, nil
}

// appendInteger appends the minimal two's complement big-endian representation
// of x to dst.
func appendInteger(dst []byte, x *big.Int) []byte {
	switch x.Sign() {
	case 0:
		// Zero is written as a single 0 zero rather than no bytes.
		return append(dst, 0x00)
	case -1:
		// A negative number has to be converted to two's-complement
		// form. So we'll invert and subtract 1. If the
		// most-significant-bit isn't set then we'll need to pad the
		// beginning with 0xff in order to keep the number negative.
		nMinus1 := new(big.Int).Neg(x)
		nMinus1.Sub(nMinus1, bigOne)
		bs := nMinus1.Bytes()
		for i := range bs {
			bs[i] ^= 0xff
		}
		if len(bs) == 0 || bs[0]&0x80 == 0 {
			dst = append(dst, 0xff)
		}
		return append(dst, bs...)
	default:
		bs := x.Bytes()
		if bs[0]&0x80 != 0 {
			// We'll have to pad this with 0x00 in order to stop it
			// looking like a negative number.
			dst = append(dst, 0x00)
		}
		return append(dst, bs...)
	}
}

// parseInteger parses the two's complement big-endian representation in b. The
// representation must be minimal.
func parseInteger(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, der.Errorf(der.CodeInvalidObject, "empty integer")
	}
	if len(b) > 1 && ((b[0] == 0x00 && b[1]&0x80 == 0) || (b[0] == 0xFF && b[1]&0x80 == 0x80)) {
		return nil, der.Errorf(der.CodeInvalidIntegerEncoding, "integer not minimally-encoded")
	}
	i := new(big.Int)
	if b[0]&0x80 == 0 {
		return i.SetBytes(b), nil
	}
	// negative integer, calculate 2s complement
	bs := make([]byte, len(b))
	for j := range b {
		bs[j] = ^b[j]
	}
	i.SetBytes(bs)
	i.Add(i, bigOne)
	return i.Neg(i), nil
}

//endregion

//region [UNIVERSAL 10] ENUMERATED

// Enumerated represents an ASN.1 ENUMERATED value. Its encoding follows the
// rules of INTEGER.
//
// See also section 20 of Rec. ITU-T X.680.
type Enumerated int64

// SerializeDER writes e.
func (e Enumerated) SerializeDER(w *tlv.Writer) error {
	w.WritePrimitive(der.Universal(der.TagEnumerated), appendInteger(nil, big.NewInt(int64(e))))
	return nil
}

// DecodeEnumerated decodes an ENUMERATED value from n. Values that do not fit
// into an int64 are rejected with [der.CodeValueOutOfRange].
func DecodeEnumerated(n tlv.Node) (Enumerated, error) {
	data, err := primitive(n, der.Universal(der.TagEnumerated))
	if err != nil {
		return 0, err
	}
	v, err := parseInteger(data)
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, der.Errorf(der.CodeValueOutOfRange, "enumerated value %v does not fit into an int64", v)
	}
	return Enumerated(v.Int64()), nil
}

//endregion
