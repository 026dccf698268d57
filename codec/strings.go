// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

// charset translates between Go strings and the content octets of a string
// type.
type charset interface {
	encode(s string) ([]byte, bool)
	decode(b []byte) (string, bool)
}

// asciiCharset is a subset of ASCII. The function reports whether a byte is
// part of the set.
type asciiCharset func(b byte) bool

func (c asciiCharset) valid(s string) bool {
	for i := 0; i < len(s); i++ {
		if !c(s[i]) {
			return false
		}
	}
	return true
}

func (c asciiCharset) encode(s string) ([]byte, bool) {
	return []byte(s), c.valid(s)
}

func (c asciiCharset) decode(b []byte) (string, bool) {
	s := string(b)
	return s, c.valid(s)
}

// utf8Charset is the charset of UTF8String.
type utf8Charset struct{}

func (utf8Charset) encode(s string) ([]byte, bool) {
	return []byte(s), utf8.ValidString(s)
}

func (utf8Charset) decode(b []byte) (string, bool) {
	return string(b), utf8.Valid(b)
}

// textCharset uses a character encoding from golang.org/x/text. The valid
// function limits the repertoire of the string type, unitSize is the size of a
// code unit in bytes.
type textCharset struct {
	enc      encoding.Encoding
	valid    func(r rune) bool
	unitSize int
}

func (c textCharset) encode(s string) ([]byte, bool) {
	if !utf8.ValidString(s) {
		return nil, false
	}
	for _, r := range s {
		if !c.valid(r) {
			return nil, false
		}
	}
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	return b, err == nil
}

func (c textCharset) decode(b []byte) (string, bool) {
	if len(b)%c.unitSize != 0 {
		return "", false
	}
	d, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	s := string(d)
	// Invalid code units are decoded as U+FFFD. These do not survive encoding.
	if e, ok := c.encode(s); !ok || !bytes.Equal(e, b) {
		return "", false
	}
	return s, true
}

var (
	numericCharset   = asciiCharset(isNumeric)
	printableCharset = asciiCharset(isPrintable)
	ia5Charset       = asciiCharset(func(b byte) bool { return b < utf8.RuneSelf })
	visibleCharset   = asciiCharset(func(b byte) bool { return ' ' <= b && b < 0x7F })
	latin1Charset    = textCharset{charmap.ISO8859_1, func(r rune) bool { return r <= 0xFF }, 1}
	bmpCharset       = textCharset{unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), isBMP, 2}
	universalCharset = textCharset{utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), func(rune) bool { return true }, 4}
)

// isNumeric reports whether b can appear in an ASN.1 NumericString.
func isNumeric(b byte) bool {
	return '0' <= b && b <= '9' || b == ' '
}

// isPrintable reports whether the given b is in the ASN.1 PrintableString set.
func isPrintable(b byte) bool {
	return 'a' <= b && b <= 'z' ||
		'A' <= b && b <= 'Z' ||
		'0' <= b && b <= '9' ||
		'\'' <= b && b <= ')' ||
		'+' <= b && b <= '/' ||
		b == ' ' ||
		b == ':' ||
		b == '=' ||
		b == '?'
}

// isBMP reports whether r is part of the Unicode Basic Multilingual Plane and
// not a surrogate.
func isBMP(r rune) bool {
	return r <= 0xFFFF && (r < 0xD800 || r > 0xDFFF)
}

// writeString writes s using the given charset.
func writeString(w *tlv.Writer, tag uint64, cs charset, s string) error {
	b, ok := cs.encode(s)
	if !ok {
		return der.Errorf(der.CodeInvalidStringRepresentation, "invalid characters for %v", der.Universal(tag))
	}
	w.WritePrimitive(der.Universal(tag), b)
	return nil
}

// readString decodes the contents of n using the given charset.
func readString[T ~string](n tlv.Node, tag uint64, cs charset) (T, error) {
	data, err := primitive(n, der.Universal(tag))
	if err != nil {
		return "", err
	}
	s, ok := cs.decode(data)
	if !ok {
		return "", der.Errorf(der.CodeInvalidStringRepresentation, "invalid encoding of %v", der.Universal(tag))
	}
	return T(s), nil
}

//region [UNIVERSAL 12] UTF8String

// UTF8String represents the ASN.1 UTF8String type. A UTF8String must hold
// valid UTF-8.
//
// See also section 41 of Rec. ITU-T X.680.
type UTF8String string

// IsValid reports whether s contains valid UTF-8.
func (s UTF8String) IsValid() bool {
	return utf8.ValidString(string(s))
}

// SerializeDER writes s.
func (s UTF8String) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagUTF8String, utf8Charset{}, string(s))
}

// DecodeUTF8String decodes a UTF8String from n.
func DecodeUTF8String(n tlv.Node) (UTF8String, error) {
	return readString[UTF8String](n, der.TagUTF8String, utf8Charset{})
}

//endregion

//region [UNIVERSAL 18] NumericString

// NumericString corresponds to the ASN.1 NumericString type. A NumericString
// can only consist of the digits 0-9 and space.
//
// See also section 41 of Rec. ITU-T X.680.
type NumericString string

// IsValid reports whether s consists only of allowed numeric characters.
func (s NumericString) IsValid() bool {
	return numericCharset.valid(string(s))
}

// SerializeDER writes s.
func (s NumericString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagNumericString, numericCharset, string(s))
}

// DecodeNumericString decodes a NumericString from n.
func DecodeNumericString(n tlv.Node) (NumericString, error) {
	return readString[NumericString](n, der.TagNumericString, numericCharset)
}

//endregion

//region [UNIVERSAL 19] PrintableString

// PrintableString represents the ASN.1 type PrintableString. A printable string
// can only contain the following ASCII characters:
//
//	A-Z	// upper case letters
//	a-z	// lower case letters
//	0-9	// digits
//	 	// space
//	'	// apostrophe
//	()	// Parenthesis
//	+-/	// plus, hyphen, solidus
//	.,:	// fill stop, comma, colon
//	=	// equals sign
//	?	// question mark
//
// See also section 41 of Rec. ITU-T X.680.
type PrintableString string

// IsValid reports whether s consists only of printable characters.
func (s PrintableString) IsValid() bool {
	return printableCharset.valid(string(s))
}

// SerializeDER writes s.
func (s PrintableString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagPrintableString, printableCharset, string(s))
}

// DecodePrintableString decodes a PrintableString from n.
func DecodePrintableString(n tlv.Node) (PrintableString, error) {
	return readString[PrintableString](n, der.TagPrintableString, printableCharset)
}

//endregion

//region [UNIVERSAL 20] TeletexString, [UNIVERSAL 21] VideotexString, [UNIVERSAL 25] GraphicString, [UNIVERSAL 27] GeneralString

// TeletexString represents the ASN.1 TeletexString (T61String) type. The full
// T.61 repertoire is not supported. Values are limited to the characters of
// ISO 8859-1 and transcoded accordingly.
type TeletexString string

// SerializeDER writes s.
func (s TeletexString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagTeletexString, latin1Charset, string(s))
}

// DecodeTeletexString decodes a TeletexString from n.
func DecodeTeletexString(n tlv.Node) (TeletexString, error) {
	return readString[TeletexString](n, der.TagTeletexString, latin1Charset)
}

// VideotexString represents the ASN.1 VideotexString type. Like
// [TeletexString] it is limited to ISO 8859-1.
type VideotexString string

// SerializeDER writes s.
func (s VideotexString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagVideotexString, latin1Charset, string(s))
}

// DecodeVideotexString decodes a VideotexString from n.
func DecodeVideotexString(n tlv.Node) (VideotexString, error) {
	return readString[VideotexString](n, der.TagVideotexString, latin1Charset)
}

// GraphicString represents the ASN.1 GraphicString type, limited to ISO 8859-1.
type GraphicString string

// SerializeDER writes s.
func (s GraphicString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagGraphicString, latin1Charset, string(s))
}

// DecodeGraphicString decodes a GraphicString from n.
func DecodeGraphicString(n tlv.Node) (GraphicString, error) {
	return readString[GraphicString](n, der.TagGraphicString, latin1Charset)
}

// GeneralString represents the ASN.1 GeneralString type, limited to ISO 8859-1.
type GeneralString string

// SerializeDER writes s.
func (s GeneralString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagGeneralString, latin1Charset, string(s))
}

// DecodeGeneralString decodes a GeneralString from n.
func DecodeGeneralString(n tlv.Node) (GeneralString, error) {
	return readString[GeneralString](n, der.TagGeneralString, latin1Charset)
}

//endregion

//region [UNIVERSAL 22] IA5String

// IA5String represents the ASN.1 type IA5String. An IA5String must consist on
// ASCII characters only.
//
// See also section 41 of Rec. ITU-T X.680.
type IA5String string

// IsValid reports whether the contents of s consist only of ASCII characters.
func (s IA5String) IsValid() bool {
	return ia5Charset.valid(string(s))
}

// SerializeDER writes s.
func (s IA5String) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagIA5String, ia5Charset, string(s))
}

// DecodeIA5String decodes an IA5String from n.
func DecodeIA5String(n tlv.Node) (IA5String, error) {
	return readString[IA5String](n, der.TagIA5String, ia5Charset)
}

//endregion

//region [UNIVERSAL 26] VisibleString

// VisibleString represents the ASN.1 type VisibleString (also known as
// ISO646String). A VisibleString consists of the printable ASCII characters
// including space.
//
// See also section 41 of Rec. ITU-T X.680.
type VisibleString string

// IsValid reports whether s only consists of visible ASCII characters.
func (s VisibleString) IsValid() bool {
	return visibleCharset.valid(string(s))
}

// SerializeDER writes s.
func (s VisibleString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagVisibleString, visibleCharset, string(s))
}

// DecodeVisibleString decodes a VisibleString from n.
func DecodeVisibleString(n tlv.Node) (VisibleString, error) {
	return readString[VisibleString](n, der.TagVisibleString, visibleCharset)
}

//endregion

//region [UNIVERSAL 28] UniversalString

// UniversalString represents the corresponding ASN.1 type. A UniversalString
// can contain any Unicode character. Note that the Go type uses standard Go
// strings which are UTF-8 encoded. The encoding of a UniversalString uses big
// endian UTF-32.
//
// In most cases [UTF8String] is a more appropriate type.
//
// See also section 41 of Rec. ITU-T X.680.
type UniversalString string

// SerializeDER writes s.
func (s UniversalString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagUniversalString, universalCharset, string(s))
}

// DecodeUniversalString decodes a UniversalString from n.
func DecodeUniversalString(n tlv.Node) (UniversalString, error) {
	return readString[UniversalString](n, der.TagUniversalString, universalCharset)
}

//endregion

//region [UNIVERSAL 30] BMPString

// BMPString represents the corresponding ASN.1 type. A BMPString can hold any
// character of the Unicode Basic Multilingual Plane. Note that this type uses
// standard Go strings which are UTF-8 encoded. The encoding of a BMPString uses
// big endian UTF-16.
//
// In most cases [UTF8String] is a more appropriate type.
//
// See also section 41 of Rec. ITU-T X.680.
type BMPString string

// IsValid reports whether s only holds characters of the Basic Multilingual
// Plane.
func (s BMPString) IsValid() bool {
	_, ok := bmpCharset.encode(string(s))
	return ok
}

// SerializeDER writes s.
func (s BMPString) SerializeDER(w *tlv.Writer) error {
	return writeString(w, der.TagBMPString, bmpCharset, string(s))
}

// DecodeBMPString decodes a BMPString from n.
func DecodeBMPString(n tlv.Node) (BMPString, error) {
	return readString[BMPString](n, der.TagBMPString, bmpCharset)
}

//endregion
