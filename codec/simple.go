// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 1] BOOLEAN

// Boolean represents the ASN.1 BOOLEAN type. In DER true is encoded as 0xFF.
type Boolean bool

// SerializeDER writes b.
func (b Boolean) SerializeDER(w *tlv.Writer) error {
	v := byte(0x00)
	if b {
		v = 0xFF
	}
	w.WritePrimitive(der.Universal(der.TagBoolean), []byte{v})
	return nil
}

// DecodeBoolean decodes a BOOLEAN from n. Only the octets 0x00 and 0xFF are
// accepted.
func DecodeBoolean(n tlv.Node) (Boolean, error) {
	data, err := primitive(n, der.Universal(der.TagBoolean))
	if err != nil {
		return false, err
	}
	if len(data) != 1 {
		return false, der.Errorf(der.CodeInvalidObject, "boolean with %d content bytes", len(data))
	}
	switch data[0] {
	case 0x00:
		return false, nil
	case 0xFF:
		return true, nil
	}
	return false, der.Errorf(der.CodeInvalidObject, "invalid boolean %#02x", data[0])
}

//endregion

//region [UNIVERSAL 4] OCTET STRING

// OctetString represents the ASN.1 OCTET STRING type.
type OctetString []byte

// SerializeDER writes s.
func (s OctetString) SerializeDER(w *tlv.Writer) error {
	w.WritePrimitive(der.Universal(der.TagOctetString), s)
	return nil
}

// DecodeOctetString decodes an OCTET STRING from n. The returned value shares
// memory with n.
func DecodeOctetString(n tlv.Node) (OctetString, error) {
	data, err := primitive(n, der.Universal(der.TagOctetString))
	if err != nil {
		return nil, err
	}
	return OctetString(data), nil
}

//endregion

//region [UNIVERSAL 5] NULL

// Null represents the ASN.1 NULL type.
type Null struct{}

// SerializeDER writes the NULL value.
func (Null) SerializeDER(w *tlv.Writer) error {
	w.WritePrimitive(der.Universal(der.TagNull), nil)
	return nil
}

// DecodeNull decodes a NULL from n. The contents must be empty.
func DecodeNull(n tlv.Node) (Null, error) {
	data, err := primitive(n, der.Universal(der.TagNull))
	if err != nil {
		return Null{}, err
	}
	if len(data) != 0 {
		return Null{}, der.Errorf(der.CodeInvalidObject, "null with %d content bytes", len(data))
	}
	return Null{}, nil
}

//endregion
