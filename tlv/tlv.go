// Package tlv implements the tag-length-value (TLV) syntax of the
// Distinguished Encoding Rules (DER) as specified in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// [Parse] decomposes a byte buffer into a tree of [Node] values. The tree is
// backed by a flat list of records, one per TLV, and is never materialized:
// the children of a constructed node form a [Nodes] collection that is
// iterated lazily. Parse validates the DER rules of the syntax layer. Lengths
// must be definite and minimally encoded, tag numbers must use the shortest
// possible form, and the input must consist of exactly one TLV. Parse also
// limits the nesting depth to [MaxDepth] and the number of nodes to
// [MaxNodes], independent of the lengths declared in the input.
//
// A [Writer] produces DER bytes. Writing a constructed TLV collects its
// contents in a separate buffer first so that the length prefix is always
// minimal. Anything the Writer produces parses back into identical bytes.
//
// This package deals with the syntactic layer of DER while package
// [codello.dev/der/codec] deals with the semantic layer.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"math"
	"math/bits"
	"strconv"

	"codello.dev/der"
)

// Header represents a TLV header, consisting of the identifier octets and the
// length octets of an encoded data value.
type Header struct {
	Identifier  der.Identifier
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	s := h.Identifier.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	s += ":" + strconv.Itoa(h.Length)
	return s
}

// Size returns the number of bytes needed to encode h.
func (h Header) Size() int {
	return der.IdentifierSize(h.Identifier) + lengthSize(h.Length)
}

// AppendHeader appends the encoding of h to dst and returns the extended
// buffer. h.Length must not be negative.
func AppendHeader(dst []byte, h Header) []byte {
	dst = der.AppendIdentifier(dst, h.Identifier, h.Constructed)
	return appendLength(dst, h.Length)
}

// lengthSize returns the number of bytes needed to encode the length l.
func lengthSize(l int) int {
	if l < 0x80 {
		return 1
	}
	return 1 + (bits.Len(uint(l))+7)/8
}

// appendLength appends the DER encoding of the length l to dst. Lengths below
// 128 use the short form, all others the long form with the minimal number of
// length octets.
func appendLength(dst []byte, l int) []byte {
	if l < 0x80 {
		return append(dst, byte(l))
	}
	n := (bits.Len(uint(l)) + 7) / 8
	dst = append(dst, 0x80|byte(n))
	for ; n > 0; n-- {
		dst = append(dst, byte(l>>(8*(n-1))))
	}
	return dst
}

// readHeader decodes the TLV header at the start of b and returns it along with
// its size in bytes. The returned length is not validated against the number
// of bytes available after the header.
func readHeader(b []byte) (h Header, n int, err error) {
	h.Identifier, h.Constructed, n, err = der.ReadIdentifier(b)
	if err != nil {
		return h, n, err
	}
	if n >= len(b) {
		return h, n, der.Errorf(der.CodeTruncatedField, "missing length octets")
	}
	l := b[n]
	n++
	if l < 0x80 {
		h.Length = int(l)
		return h, n, nil
	}
	if l == 0x80 {
		return h, n, der.Errorf(der.CodeUnsupportedFieldLength, "indefinite length")
	}
	numBytes := int(l & 0x7f)
	// More than 8 length octets is treated as a malformed header.
	if numBytes > 8 {
		return h, n, der.Errorf(der.CodeInvalidObject, "length uses %d octets", numBytes)
	}
	if len(b)-n < numBytes {
		return h, n, der.Errorf(der.CodeTruncatedField, "truncated length octets")
	}
	var length uint64
	for _, c := range b[n : n+numBytes] {
		length = length<<8 | uint64(c)
	}
	n += numBytes
	if length < 0x80 {
		return h, n, der.Errorf(der.CodeUnsupportedFieldLength, "length %d must use the short form", length)
	}
	if minimal := (bits.Len64(length) + 7) / 8; numBytes != minimal {
		return h, n, der.Errorf(der.CodeUnsupportedFieldLength, "length %d uses %d octets instead of %d", length, numBytes, minimal)
	}
	if length > math.MaxInt {
		return h, n, der.Errorf(der.CodeTruncatedField, "length %d exceeds the input", length)
	}
	h.Length = int(length)
	return h, n, nil
}

// requireKeyedLiterals can be embedded in a struct to require keyed literals.
type requireKeyedLiterals struct{}

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
