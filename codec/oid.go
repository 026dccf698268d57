// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"codello.dev/der"
	"codello.dev/der/internal/vlq"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of
// an object identifier are specified in [Rec. ITU-T X.660]. A valid object
// identifier has at least two arcs. The first arc is 0, 1 or 2 and if the first
// arc is 0 or 1 the second arc is at most 39.
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint64

// ParseObjectIdentifier parses the dotted decimal notation of an object
// identifier, for example "1.2.840.113549".
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, der.Errorf(der.CodeInvalidStringRepresentation, "invalid object identifier %q", s)
		}
		oid[i] = v
	}
	if err := oid.validate(); err != nil {
		return nil, err
	}
	return oid, nil
}

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// String returns the dotted decimal notation of oid.
func (oid ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 20)
	for i, v := range oid {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, v, 10))
	}

	return s.String()
}

// validate checks the constraints on the first two arcs of oid.
func (oid ObjectIdentifier) validate() error {
	if len(oid) < 2 {
		return der.Errorf(der.CodeTooFewOIDComponents, "object identifier with %d arcs", len(oid))
	}
	if oid[0] > 2 {
		return der.Errorf(der.CodeInvalidObject, "first arc %d exceeds 2", oid[0])
	}
	if oid[0] < 2 && oid[1] > 39 {
		return der.Errorf(der.CodeInvalidObject, "second arc %d exceeds 39", oid[1])
	}
	if oid[0] == 2 && oid[1] > math.MaxUint64-80 {
		return der.Errorf(der.CodeValueOutOfRange, "second arc %d is too large", oid[1])
	}
	return nil
}

// SerializeDER writes oid. The first two arcs are combined into a single
// subidentifier.
func (oid ObjectIdentifier) SerializeDER(w *tlv.Writer) error {
	if err := oid.validate(); err != nil {
		return err
	}
	content := vlq.Append(make([]byte, 0, len(oid)+4), oid[0]*40+oid[1])
	for _, v := range oid[2:] {
		content = vlq.Append(content, v)
	}
	w.WritePrimitive(der.Universal(der.TagOID), content)
	return nil
}

// DecodeObjectIdentifier decodes an OBJECT IDENTIFIER from n.
func DecodeObjectIdentifier(n tlv.Node) (ObjectIdentifier, error) {
	data, err := primitive(n, der.Universal(der.TagOID))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, der.Errorf(der.CodeInvalidObject, "empty object identifier")
	}
	oid := make(ObjectIdentifier, 1, len(data)+1)
	for i := 0; i < len(data); {
		v, l, err := vlq.ReadMinimal[uint64](data[i:])
		switch {
		case errors.Is(err, vlq.ErrNotMinimal):
			return nil, der.Errorf(der.CodeInvalidObject, "subidentifier at offset %d is not minimally encoded", i)
		case errors.Is(err, vlq.ErrTruncated):
			return nil, der.Errorf(der.CodeInvalidObject, "truncated subidentifier at offset %d", i)
		case errors.Is(err, vlq.ErrOverflow):
			return nil, der.Errorf(der.CodeValueOutOfRange, "subidentifier at offset %d overflows 64 bits", i)
		}
		if i == 0 {
			first := min(v/40, 2)
			oid[0] = first
			oid = append(oid, v-40*first)
		} else {
			oid = append(oid, v)
		}
		i += l
	}
	return oid, nil
}

//endregion
