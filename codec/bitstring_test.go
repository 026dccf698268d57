// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"testing"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

func TestBitString(t *testing.T) {
	testCodec(t, DecodeBitString, map[string]testCase[BitString]{
		"Empty":   {BitString{[]byte{}, 0}, []byte{0x03, 0x01, 0x00}},
		"Aligned": {BitString{[]byte{0x0A, 0x3B}, 16}, []byte{0x03, 0x03, 0x00, 0x0A, 0x3B}},
		"Padded":  {BitString{[]byte{0x6E, 0x5D, 0xC0}, 18}, []byte{0x03, 0x04, 0x06, 0x6E, 0x5D, 0xC0}},
		"OneBit":  {BitString{[]byte{0x80}, 1}, []byte{0x03, 0x02, 0x07, 0x80}},
	})
}

func TestDecodeBitString_errors(t *testing.T) {
	testDecodeErrors(t, DecodeBitString, map[string]errorCase{
		"Empty":           {[]byte{0x03, 0x00}, der.ErrInvalidObject},
		"PaddingTooLarge": {[]byte{0x03, 0x02, 0x08, 0x00}, der.ErrInvalidObject},
		"PaddedEmpty":     {[]byte{0x03, 0x01, 0x01}, der.ErrInvalidObject},
		"NonZeroPadding":  {[]byte{0x03, 0x02, 0x01, 0x01}, der.ErrInvalidObject},
		"Constructed":     {[]byte{0x23, 0x00}, der.ErrUnexpectedFieldType},
	})
}

func TestBitString_SerializeDER_invalid(t *testing.T) {
	tests := map[string]BitString{
		"NonZeroPadding": {[]byte{0xFF}, 4},
		"TooManyBytes":   {[]byte{0x00, 0x00}, 3},
		"TooFewBytes":    {[]byte{0x00}, 9},
		"NegativeLength": {nil, -1},
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			if s.IsValid() {
				t.Errorf("IsValid() = true, want false")
			}
			if _, err := tlv.Serialize(s); !errors.Is(err, der.ErrInvalidObject) {
				t.Errorf("SerializeDER() error = %v, want %v", err, der.ErrInvalidObject)
			}
		})
	}
}

func TestNewBitString(t *testing.T) {
	s, err := NewBitString([]byte{0xA0}, 5)
	if err != nil {
		t.Fatalf("NewBitString() error = %v", err)
	}
	if !s.IsValid() {
		t.Errorf("IsValid() = false, want true")
	}
	if got, want := s.String(), "101"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s.At(0) != 1 || s.At(1) != 0 || s.At(2) != 1 {
		t.Errorf("At() returned unexpected bits for %v", s)
	}

	if _, err = NewBitString([]byte{0xA0}, 6); !errors.Is(err, der.ErrInvalidObject) {
		t.Errorf("NewBitString() error = %v, want %v", err, der.ErrInvalidObject)
	}
}
