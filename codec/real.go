// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 9] REAL

// Real represents an ASN.1 REAL value. Any float64 except NaN can be encoded.
// Positive and negative zero both encode as zero.
//
// See also section 21 of Rec. ITU-T X.680.
type Real float64

// Special values of the REAL type. See Section 8.5.9 of Rec. ITU-T X.690.
const (
	realPlusInfinity  = 0b01000000
	realMinusInfinity = 0b01000001
)

// SerializeDER writes r using the base 2 binary encoding. The mantissa is odd
// and the exponent uses the minimal number of bytes.
func (r Real) SerializeDER(w *tlv.Writer) error {
	id := der.Universal(der.TagReal)
	f := float64(r)
	switch {
	case math.IsNaN(f):
		return der.Errorf(der.CodeInvalidObject, "NaN cannot be encoded")
	case f == 0:
		w.WritePrimitive(id, nil)
		return nil
	case math.IsInf(f, 1):
		w.WritePrimitive(id, []byte{realPlusInfinity})
		return nil
	case math.IsInf(f, -1):
		w.WritePrimitive(id, []byte{realMinusInfinity})
		return nil
	}

	// compute mantissa and exponent such that the mantissa is odd
	bts := math.Float64bits(f)
	m := bts & (1<<52 - 1)
	e := int((bts >> 52) & 0x7FF)
	if e == 0 {
		// subnormal, no implicit leading bit
		e = -1022
	} else {
		m |= 1 << 52
		e -= 1023
	}
	e -= 52
	shift := bits.TrailingZeros64(m)
	m >>= shift
	e += shift

	// First byte is 1s0000ee where s is the sign and ee is an indicator for the
	// number of octets needed for the exponent. An IEEE754 double needs at
	// most 2 exponent bytes.
	content := make([]byte, 1, 12)
	content[0] = 0b10000000 | byte(bts>>63)<<6
	if e >= math.MinInt8 && e <= math.MaxInt8 {
		content = append(content, byte(e))
	} else {
		content[0] |= 0x01
		content = append(content, byte(e>>8), byte(e))
	}
	for ml := (bits.Len64(m) + 8 - 1) / 8; ml > 0; ml-- {
		content = append(content, byte(m>>(8*(ml-1))))
	}
	w.WritePrimitive(id, content)
	return nil
}

// DecodeReal decodes a REAL value from n. DecodeReal supports the binary
// encoding with base 2, the decimal encoding and the special values for
// positive and negative infinity.
func DecodeReal(n tlv.Node) (Real, error) {
	data, err := primitive(n, der.Universal(der.TagReal))
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	switch b := data[0]; {
	case b&0x80 != 0:
		return parseBinaryReal(data)
	case b&0x40 != 0: // b == 0b01xxxxxx, this indicates a special value
		if len(data) != 1 {
			return 0, der.Errorf(der.CodeInvalidObject, "special value with %d content bytes", len(data))
		}
		switch b {
		case realPlusInfinity:
			return Real(math.Inf(1)), nil
		case realMinusInfinity:
			return Real(math.Inf(-1)), nil
		}
		return 0, der.Errorf(der.CodeInvalidObject, "unsupported special value %#02x", b)
	default:
		return parseDecimalReal(data)
	}
}

// parseBinaryReal parses the binary encoding of a REAL value. The value is
// computed as sign * mantissa * 2^exponent.
//
// See Section 8.5.7 of Rec. ITU-T X.690.
func parseBinaryReal(data []byte) (Real, error) {
	b := data[0]
	if base := (b & 0x30) >> 4; base != 0 {
		return 0, der.Errorf(der.CodeInvalidObject, "only base 2 is allowed in DER, got base bits %02b", base)
	}
	if f := (b & 0x0C) >> 2; f != 0 {
		return 0, der.Errorf(der.CodeInvalidObject, "scaling factor %d is not allowed in DER", f)
	}
	rest := data[1:]
	expLen := int(b&0x03) + 1
	if b&0x03 == 0x03 {
		if len(rest) == 0 {
			return 0, der.Errorf(der.CodeTruncatedField, "missing exponent length")
		}
		expLen, rest = int(rest[0]), rest[1:]
		if expLen == 0 {
			return 0, der.Errorf(der.CodeInvalidObject, "zero length exponent")
		}
	}
	if len(rest) <= expLen {
		return 0, der.Errorf(der.CodeTruncatedField, "real needs %d exponent bytes and a mantissa", expLen)
	}
	if expLen > 4 {
		return 0, der.Errorf(der.CodeValueOutOfRange, "exponent with %d bytes", expLen)
	}
	e := int64(int8(rest[0]))
	for _, c := range rest[1:expLen] {
		e = e<<8 | int64(c)
	}

	m := new(big.Int).SetBytes(rest[expLen:])
	if m.Sign() == 0 {
		return 0, der.Errorf(der.CodeInvalidObject, "zero mantissa")
	}
	f := new(big.Float).SetInt(m)
	f.SetMantExp(f, int(e))
	v, _ := f.Float64()
	if math.IsInf(v, 0) || v == 0 {
		return 0, der.Errorf(der.CodeValueOutOfRange, "real value %s*2^%d does not fit into a float64", m, e)
	}
	if b&0x40 != 0 {
		v = -v
	}
	return Real(v), nil
}

// parseDecimalReal parses the decimal encoding of a REAL value. The contents
// after the first byte are interpreted as a decimal number. Both the full stop
// and the comma are accepted as decimal mark.
//
// See Section 8.5.8 of Rec. ITU-T X.690.
func parseDecimalReal(data []byte) (Real, error) {
	if len(data) < 2 {
		return 0, der.Errorf(der.CodeInvalidStringRepresentation, "empty decimal real")
	}
	s := strings.TrimLeft(string(data[1:]), " ")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return !('0' <= r && r <= '9' || r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E')
	}) {
		return 0, der.Errorf(der.CodeInvalidStringRepresentation, "invalid decimal real %q", string(data[1:]))
	}
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, der.Errorf(der.CodeValueOutOfRange, "decimal real %q does not fit into a float64", s)
	} else if err != nil {
		return 0, der.Errorf(der.CodeInvalidStringRepresentation, "invalid decimal real %q", s)
	}
	return Real(v), nil
}

//endregion
