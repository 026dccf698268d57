// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/cockroachdb/errors"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

// Explicit wraps a value with an explicit tag. The encoding of Value becomes
// the only element of a constructed data value with the given Identifier.
type Explicit struct {
	Identifier der.Identifier
	Value      tlv.Serializer
}

// SerializeDER writes e.
func (e Explicit) SerializeDER(w *tlv.Writer) error {
	return w.WriteConstructed(e.Identifier, func(w *tlv.Writer) error {
		return w.Write(e.Value)
	})
}

// DecodeExplicit decodes an explicitly tagged value from n. n must be a
// constructed data value with the identifier id containing exactly one
// element. The element is decoded using dec.
func DecodeExplicit[T any](n tlv.Node, id der.Identifier, dec DecodeFunc[T]) (T, error) {
	var zero T
	children, err := constructed(n, id)
	if err != nil {
		return zero, err
	}
	it := children.Iter()
	inner, ok := it.Next()
	if !ok {
		return zero, der.Errorf(der.CodeInvalidObject, "explicit type %v has no components", id)
	}
	if _, ok = it.Peek(); ok {
		return zero, der.Errorf(der.CodeInvalidObject, "explicit type %v has multiple components", id)
	}
	v, err := dec(inner)
	if err != nil {
		return zero, errors.Wrapf(err, "explicit type %v", id)
	}
	return v, nil
}

// Implicit replaces the identifier of a value. Value is encoded as usual but
// its outer identifier is replaced by Identifier. Whether the encoding is
// primitive or constructed is retained.
//
// There is no corresponding decode function. Implicitly tagged values are
// decoded by passing a node with the expected identifier to a function that
// interprets its contents.
type Implicit struct {
	Identifier der.Identifier
	Value      tlv.Serializer
}

// SerializeDER writes i.
func (i Implicit) SerializeDER(w *tlv.Writer) error {
	b, err := tlv.Serialize(i.Value)
	if err != nil {
		return err
	}
	n, err := tlv.Parse(b)
	if err != nil {
		return errors.Wrapf(err, "implicit type %v", i.Identifier)
	}
	switch c := n.Content.(type) {
	case tlv.Primitive:
		w.WritePrimitive(i.Identifier, c)
		return nil
	case tlv.Nodes:
		return w.WriteConstructed(i.Identifier, func(w *tlv.Writer) error {
			for child := range c.All() {
				w.WriteRaw(child.EncodedBytes)
			}
			return nil
		})
	}
	return der.Errorf(der.CodeUnknown, "unexpected content %T", n.Content)
}
