// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"slices"

	"github.com/cockroachdb/errors"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 16] SEQUENCE

// Sequence represents an ASN.1 SEQUENCE or SEQUENCE OF. Its elements are
// encoded in order.
//
// See also sections 25 and 26 of Rec. ITU-T X.680.
type Sequence []tlv.Serializer

// SerializeDER writes s.
func (s Sequence) SerializeDER(w *tlv.Writer) error {
	return w.WriteSequence(func(w *tlv.Writer) error {
		for i, v := range s {
			if err := w.Write(v); err != nil {
				return errors.Wrapf(err, "SEQUENCE component %d", i)
			}
		}
		return nil
	})
}

// DecodeSequence decodes a SEQUENCE from n, using dec for each element. The
// elements are returned in the order of the encoding.
func DecodeSequence[T any](n tlv.Node, dec DecodeFunc[T]) ([]T, error) {
	return decodeElements(n, der.Universal(der.TagSequence), dec)
}

//endregion

//region [UNIVERSAL 17] SET

// Set represents an ASN.1 SET or SET OF. In DER the elements of a SET are
// sorted by their encodings, so the order of the elements in a Set value does
// not affect its encoding.
//
// See also sections 27 and 28 of Rec. ITU-T X.680.
type Set []tlv.Serializer

// SerializeDER writes s. The encodings of the elements are sorted in ascending
// lexicographic order. If one encoding is a prefix of the other, the shorter
// one comes first.
func (s Set) SerializeDER(w *tlv.Writer) error {
	encs := make([][]byte, len(s))
	for i, v := range s {
		b, err := tlv.Serialize(v)
		if err != nil {
			return errors.Wrapf(err, "SET component %d", i)
		}
		encs[i] = b
	}
	slices.SortFunc(encs, bytes.Compare)
	return w.WriteSet(func(w *tlv.Writer) error {
		for _, b := range encs {
			w.WriteRaw(b)
		}
		return nil
	})
}

// DecodeSet decodes a SET from n, using dec for each element. The elements are
// returned in the order of the encoding.
func DecodeSet[T any](n tlv.Node, dec DecodeFunc[T]) ([]T, error) {
	return decodeElements(n, der.Universal(der.TagSet), dec)
}

//endregion

// decodeElements decodes all children of n using dec. n must be constructed
// and use the identifier id.
func decodeElements[T any](n tlv.Node, id der.Identifier, dec DecodeFunc[T]) ([]T, error) {
	children, err := constructed(n, id)
	if err != nil {
		return nil, err
	}
	var ret []T
	i := 0
	for child := range children.All() {
		v, err := dec(child)
		if err != nil {
			return nil, errors.Wrapf(err, "%v component %d", id, i)
		}
		ret = append(ret, v)
		i++
	}
	return ret, nil
}
