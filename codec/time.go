// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"time"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

//region [UNIVERSAL 23] UTCTime

// UTCTime represents the ASN.1 UTCTime type. In DER a UTCTime is always
// expressed in UTC with seconds precision and uses the format YYMMDDHHMMSSZ.
// Two digit years from 50 to 99 denote the years 1950 to 1999. All other years
// are in the 21st century.
//
// See also section 47 of Rec. ITU-T X.680.
type UTCTime time.Time

const utcTimeLayout = "060102150405Z"

// SerializeDER writes t. Fractions of seconds are truncated. Only times in the
// years from 1950 to 2049 can be encoded.
func (t UTCTime) SerializeDER(w *tlv.Writer) error {
	u := time.Time(t).UTC()
	if u.Year() < 1950 || u.Year() > 2049 {
		return der.Errorf(der.CodeValueOutOfRange, "year %d cannot be represented as UTCTime", u.Year())
	}
	w.WritePrimitive(der.Universal(der.TagUTCTime), []byte(u.Format(utcTimeLayout)))
	return nil
}

// String returns the time in RFC 3339 format.
func (t UTCTime) String() string {
	return time.Time(t).UTC().Format(time.RFC3339)
}

// DecodeUTCTime decodes a UTCTime from n.
func DecodeUTCTime(n tlv.Node) (UTCTime, error) {
	data, err := primitive(n, der.Universal(der.TagUTCTime))
	if err != nil {
		return UTCTime{}, err
	}
	s := string(data)
	if len(s) != len(utcTimeLayout) || s[len(s)-1] != 'Z' || !isDigits(s[:len(s)-1]) {
		return UTCTime{}, der.Errorf(der.CodeInvalidStringRepresentation, "invalid UTCTime %q", s)
	}
	century := "20"
	if s[0] >= '5' {
		century = "19"
	}
	t, err := time.Parse("2006"+utcTimeLayout[2:], century+s)
	if err != nil {
		return UTCTime{}, der.Errorf(der.CodeInvalidStringRepresentation, "invalid UTCTime %q", s)
	}
	return UTCTime(t), nil
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// GeneralizedTime represents the ASN.1 GeneralizedTime type. In DER a
// GeneralizedTime is always expressed in UTC and uses the format
// YYYYMMDDHHMMSS[.fff]Z where the fractional seconds have no trailing zeros.
//
// See also section 46 of Rec. ITU-T X.680.
type GeneralizedTime time.Time

const generalizedTimeLayout = "20060102150405.999999999Z"

// SerializeDER writes t.
func (t GeneralizedTime) SerializeDER(w *tlv.Writer) error {
	u := time.Time(t).UTC()
	if u.Year() < 0 || u.Year() > 9999 {
		return der.Errorf(der.CodeValueOutOfRange, "year %d cannot be represented as GeneralizedTime", u.Year())
	}
	w.WritePrimitive(der.Universal(der.TagGeneralizedTime), []byte(u.Format(generalizedTimeLayout)))
	return nil
}

// String returns the time in RFC 3339 format.
func (t GeneralizedTime) String() string {
	return time.Time(t).UTC().Format(time.RFC3339Nano)
}

// DecodeGeneralizedTime decodes a GeneralizedTime from n. Only the canonical
// DER form is accepted.
func DecodeGeneralizedTime(n tlv.Node) (GeneralizedTime, error) {
	data, err := primitive(n, der.Universal(der.TagGeneralizedTime))
	if err != nil {
		return GeneralizedTime{}, err
	}
	s := string(data)
	if len(s) < 15 || !isDigits(s[:14]) {
		return GeneralizedTime{}, der.Errorf(der.CodeInvalidStringRepresentation, "invalid GeneralizedTime %q", s)
	}
	t, err := time.Parse(generalizedTimeLayout, s)
	if err != nil || t.Format(generalizedTimeLayout) != s {
		return GeneralizedTime{}, der.Errorf(der.CodeInvalidStringRepresentation, "invalid GeneralizedTime %q", s)
	}
	return GeneralizedTime(t), nil
}

//endregion

// isDigits reports whether s consists of ASCII digits only.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
