// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec implements the ASN.1 types of the Distinguished Encoding Rules
// (DER) on top of the syntax layer in package [codello.dev/der/tlv]. The
// Distinguished Encoding Rules are defined in [Rec. ITU-T X.690].
//
// Every type in this package implements [tlv.Serializer] and has a
// corresponding decode function that accepts a [tlv.Node]. The following
// table lists the supported types:
//
//	ASN.1 type         Go type             Decode function
//	BOOLEAN            Boolean             DecodeBoolean
//	INTEGER            Integer             DecodeInteger
//	BIT STRING         BitString           DecodeBitString
//	OCTET STRING       OctetString         DecodeOctetString
//	NULL               Null                DecodeNull
//	OBJECT IDENTIFIER  ObjectIdentifier    DecodeObjectIdentifier
//	REAL               Real                DecodeReal
//	ENUMERATED         Enumerated          DecodeEnumerated
//	SEQUENCE           Sequence            DecodeSequence
//	SET                Set                 DecodeSet
//	UTCTime            UTCTime             DecodeUTCTime
//	GeneralizedTime    GeneralizedTime     DecodeGeneralizedTime
//
// as well as the string types UTF8String, NumericString, PrintableString,
// TeletexString, VideotexString, IA5String, GraphicString, VisibleString,
// GeneralString, UniversalString and BMPString.
//
// Decoders are strict. Non-canonical encodings such as INTEGER values with
// redundant leading bytes or BIT STRING values with non-zero padding bits are
// rejected.
//
// Tagged types are supported through [Explicit] and [Implicit]. [Decode]
// decodes any node into the matching type from the table above and falls back
// to [RawValue] for everything else.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package codec

import (
	"fmt"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

// DecodeFunc is the signature of the decode functions in this package.
type DecodeFunc[T any] func(n tlv.Node) (T, error)

// primitive returns the contents of n if n is a primitive data value with the
// identifier id.
func primitive(n tlv.Node, id der.Identifier) ([]byte, error) {
	if n.Identifier != id {
		return nil, der.Errorf(der.CodeUnexpectedFieldType, "expected %v, got %v", id, n.Identifier)
	}
	if n.Constructed() {
		return nil, der.Errorf(der.CodeUnexpectedFieldType, "constructed encoding of %v", id)
	}
	return n.Data(), nil
}

// constructed returns the children of n if n is a constructed data value with
// the identifier id.
func constructed(n tlv.Node, id der.Identifier) (tlv.Nodes, error) {
	if n.Identifier != id {
		return tlv.Nodes{}, der.Errorf(der.CodeUnexpectedFieldType, "expected %v, got %v", id, n.Identifier)
	}
	if !n.Constructed() {
		return tlv.Nodes{}, der.Errorf(der.CodeUnexpectedFieldType, "primitive encoding of %v", id)
	}
	return n.Children(), nil
}

// A RawValue represents an un-decoded data value. RawValue is used by [Decode]
// for data values of unknown types. During encoding the bytes are written as-is
// without any validation.
type RawValue struct {
	Identifier  der.Identifier
	Constructed bool
	Bytes       []byte // content octets
}

// NewRawValue returns the RawValue representation of n.
func NewRawValue(n tlv.Node) RawValue {
	if !n.Constructed() {
		return RawValue{n.Identifier, false, n.Data()}
	}
	return RawValue{n.Identifier, true, n.EncodedBytes[len(n.EncodedBytes)-n.Header().Length:]}
}

// SerializeDER writes rv, prefixing the raw bytes with an appropriate header.
func (rv RawValue) SerializeDER(w *tlv.Writer) error {
	if !rv.Constructed {
		w.WritePrimitive(rv.Identifier, rv.Bytes)
		return nil
	}
	return w.WriteConstructed(rv.Identifier, func(w *tlv.Writer) error {
		w.WriteRaw(rv.Bytes)
		return nil
	})
}

// String returns a string representation of rv. The byte contents of rv are
// only included if they are short enough.
func (rv RawValue) String() string {
	constructed := "primitive"
	if rv.Constructed {
		constructed = "constructed"
	}
	if len(rv.Bytes) > 24 {
		return fmt.Sprintf("RawValue{%s (%s) {%d bytes}}", rv.Identifier.String(), constructed, len(rv.Bytes))
	}
	return fmt.Sprintf("RawValue{%s (%s) {% X}}", rv.Identifier.String(), constructed, rv.Bytes)
}

// decoders maps the identifiers of the universal types supported by this
// package to their decode functions. The table is populated in init because
// the SEQUENCE and SET entries refer back to Decode.
var decoders map[der.Identifier]func(tlv.Node) (tlv.Serializer, error)

func init() {
	decoders = map[der.Identifier]func(tlv.Node) (tlv.Serializer, error){
		der.Universal(der.TagBoolean):         decodeAs(DecodeBoolean),
		der.Universal(der.TagInteger):         decodeAs(DecodeInteger),
		der.Universal(der.TagBitString):       decodeAs(DecodeBitString),
		der.Universal(der.TagOctetString):     decodeAs(DecodeOctetString),
		der.Universal(der.TagNull):            decodeAs(DecodeNull),
		der.Universal(der.TagOID):             decodeAs(DecodeObjectIdentifier),
		der.Universal(der.TagReal):            decodeAs(DecodeReal),
		der.Universal(der.TagEnumerated):      decodeAs(DecodeEnumerated),
		der.Universal(der.TagUTF8String):      decodeAs(DecodeUTF8String),
		der.Universal(der.TagSequence):        decodeSequence,
		der.Universal(der.TagSet):             decodeSet,
		der.Universal(der.TagNumericString):   decodeAs(DecodeNumericString),
		der.Universal(der.TagPrintableString): decodeAs(DecodePrintableString),
		der.Universal(der.TagTeletexString):   decodeAs(DecodeTeletexString),
		der.Universal(der.TagVideotexString):  decodeAs(DecodeVideotexString),
		der.Universal(der.TagIA5String):       decodeAs(DecodeIA5String),
		der.Universal(der.TagUTCTime):         decodeAs(DecodeUTCTime),
		der.Universal(der.TagGeneralizedTime): decodeAs(DecodeGeneralizedTime),
		der.Universal(der.TagGraphicString):   decodeAs(DecodeGraphicString),
		der.Universal(der.TagVisibleString):   decodeAs(DecodeVisibleString),
		der.Universal(der.TagGeneralString):   decodeAs(DecodeGeneralString),
		der.Universal(der.TagUniversalString): decodeAs(DecodeUniversalString),
		der.Universal(der.TagBMPString):       decodeAs(DecodeBMPString),
	}
}

// decodeAs adapts a typed decode function to the decoders table.
func decodeAs[T tlv.Serializer](f DecodeFunc[T]) func(tlv.Node) (tlv.Serializer, error) {
	return func(n tlv.Node) (tlv.Serializer, error) {
		v, err := f(n)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func decodeSequence(n tlv.Node) (tlv.Serializer, error) {
	s, err := DecodeSequence(n, Decode)
	if err != nil {
		return nil, err
	}
	return Sequence(s), nil
}

func decodeSet(n tlv.Node) (tlv.Serializer, error) {
	s, err := DecodeSet(n, Decode)
	if err != nil {
		return nil, err
	}
	return Set(s), nil
}

// Decode decodes n into the Go type corresponding to its identifier. SEQUENCE
// and SET values are decoded recursively into [Sequence] and [Set]. Data values
// with an identifier that is not supported by this package are returned as
// [RawValue].
//
// For canonical input, serializing the returned value reproduces
// n.EncodedBytes exactly.
func Decode(n tlv.Node) (tlv.Serializer, error) {
	if dec, ok := decoders[n.Identifier]; ok {
		return dec(n)
	}
	return NewRawValue(n), nil
}
