// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codello.dev/der"
	"codello.dev/der/tlv"
)

func TestSequence(t *testing.T) {
	tests := map[string]struct {
		value Sequence
		data  []byte
	}{
		"Empty":    {Sequence{}, []byte{0x30, 0x00}},
		"Integers": {Sequence{NewInteger(1), NewInteger(2)}, []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}},
		"Nested":   {Sequence{Sequence{Null{}}, Boolean(false)}, []byte{0x30, 0x07, 0x30, 0x02, 0x05, 0x00, 0x01, 0x01, 0x00}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := serialize(t, tc.value); !slices.Equal(got, tc.data) {
				t.Errorf("SerializeDER() = % X, want % X", got, tc.data)
			}
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	got, err := DecodeSequence(parse(t, []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}), DecodeInteger)
	if err != nil {
		t.Fatalf("DecodeSequence() error = %v", err)
	}
	want := []Integer{NewInteger(1), NewInteger(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeSequence() mismatch (-want +got):\n%s", diff)
	}

	empty, err := DecodeSequence(parse(t, []byte{0x30, 0x00}), DecodeInteger)
	if err != nil || len(empty) != 0 {
		t.Errorf("DecodeSequence() = %v, %v, want empty sequence", empty, err)
	}
}

func TestDecodeSequence_errors(t *testing.T) {
	decodeIntegers := func(n tlv.Node) ([]Integer, error) { return DecodeSequence(n, DecodeInteger) }
	testDecodeErrors(t, decodeIntegers, map[string]errorCase{
		"Set":            {[]byte{0x31, 0x03, 0x02, 0x01, 0x01}, der.ErrUnexpectedFieldType},
		"Primitive":      {[]byte{0x10, 0x00}, der.ErrUnexpectedFieldType},
		"WrongComponent": {[]byte{0x30, 0x03, 0x01, 0x01, 0xFF}, der.ErrUnexpectedFieldType},
		"BadComponent":   {[]byte{0x30, 0x04, 0x02, 0x02, 0x00, 0x01}, der.ErrInvalidIntegerEncoding},
	})
}

func TestSet(t *testing.T) {
	tests := map[string]struct {
		value Set
		data  []byte
	}{
		"Empty":       {Set{}, []byte{0x31, 0x00}},
		"Sorted":      {Set{Boolean(true), NewInteger(5)}, []byte{0x31, 0x06, 0x01, 0x01, 0xFF, 0x02, 0x01, 0x05}},
		"Unsorted":    {Set{NewInteger(5), Boolean(true)}, []byte{0x31, 0x06, 0x01, 0x01, 0xFF, 0x02, 0x01, 0x05}},
		"ByLength":    {Set{NewInteger(256), NewInteger(1)}, []byte{0x31, 0x07, 0x02, 0x01, 0x01, 0x02, 0x02, 0x01, 0x00}},
		"ByContent":   {Set{OctetString{0x02}, OctetString{0x01}}, []byte{0x31, 0x06, 0x04, 0x01, 0x01, 0x04, 0x01, 0x02}},
		"Duplicates":  {Set{Null{}, Null{}}, []byte{0x31, 0x04, 0x05, 0x00, 0x05, 0x00}},
		"Constructed": {Set{Sequence{}, Null{}}, []byte{0x31, 0x04, 0x05, 0x00, 0x30, 0x00}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := serialize(t, tc.value); !slices.Equal(got, tc.data) {
				t.Errorf("SerializeDER() = % X, want % X", got, tc.data)
			}
		})
	}
}

func TestSet_SerializeDER_error(t *testing.T) {
	w := &tlv.Writer{}
	err := Set{Null{}, ObjectIdentifier{1}}.SerializeDER(w)
	if !errors.Is(err, der.ErrTooFewOIDComponents) {
		t.Errorf("SerializeDER() error = %v, want %v", err, der.ErrTooFewOIDComponents)
	}
	if w.Len() != 0 {
		t.Errorf("SerializeDER() wrote % X after an error", w.Bytes())
	}
}

func TestDecodeSet(t *testing.T) {
	// The order of the encoding is retained, even if it is not sorted.
	got, err := DecodeSet(parse(t, []byte{0x31, 0x06, 0x02, 0x01, 0x05, 0x01, 0x01, 0xFF}), Decode)
	if err != nil {
		t.Fatalf("DecodeSet() error = %v", err)
	}
	want := []tlv.Serializer{NewInteger(5), Boolean(true)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeSet() mismatch (-want +got):\n%s", diff)
	}

	if _, err = DecodeSet(parse(t, []byte{0x30, 0x00}), Decode); !errors.Is(err, der.ErrUnexpectedFieldType) {
		t.Errorf("DecodeSet() error = %v, want %v", err, der.ErrUnexpectedFieldType)
	}
}
