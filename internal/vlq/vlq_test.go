package vlq

import (
	"errors"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"testing"
)

//region Testing Helpers

// readTestCase represents a single reading test case for type T.
type readTestCase[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	data    []byte // input
	wantN   int    // number of bytes belonging to the VLQ
	want    T      // expected output
	wantErr error  // expected error
}

// testRead asserts that decoding a VLQ using f from tc.data produces the expected results.
func testRead[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](t *testing.T, f func([]byte) (T, int, error), tc readTestCase[T]) {
	t.Helper()
	fName := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()

	got, n, err := f(tc.data)
	if !errors.Is(err, tc.wantErr) {
		t.Fatalf("%s(%# x) error = %v, wantErr %v", fName, tc.data, err, tc.wantErr)
	}
	if err != nil {
		return
	}
	if got != tc.want {
		t.Errorf("%s(%# x) got = %v, want %v", fName, tc.data, got, tc.want)
	}
	if n != tc.wantN {
		t.Errorf("%s(%# x) n = %d, want %d", fName, tc.data, n, tc.wantN)
	}
}

// writeTestCase represents a single writing test case for type T.
type writeTestcase[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	value T
	want  []byte
}

// testWrite asserts that appending tc.value as a VLQ produces the bytes in tc.want.
func testWrite[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](t *testing.T, tc writeTestcase[T]) {
	t.Helper()

	l := Size(tc.value)
	if l != len(tc.want) {
		t.Errorf("Size(%d) = %d, want %d", tc.value, l, len(tc.want))
	}
	prefix := []byte{0xAA}
	got := Append(slices.Clone(prefix), tc.value)
	if !slices.Equal(got[:1], prefix) {
		t.Errorf("Append(%d) modified prefix: %# x", tc.value, got)
	}
	if !slices.Equal(got[1:], tc.want) {
		t.Errorf("Append(%d) = %# x, want %# x", tc.value, got[1:], tc.want)
	}
}

//endregion

//region Read Tests

func TestReadMinimal(t *testing.T) {
	tests := map[string]readTestCase[uint64]{
		"SingleByte": {[]byte{0x05}, 1, 5, nil},
		"MultiByte":  {[]byte{0x85, 0x01, 0x00}, 2, 641, nil},
		"Zero":       {[]byte{0x00}, 1, 0, nil},
		"NonMinimal": {[]byte{0x80, 0x85, 0x01}, 0, 0, ErrNotMinimal},
		"MaxUint64":  {[]byte{0x81, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, 10, 1<<64 - 1, nil},
		"Empty":      {nil, 0, 0, ErrTruncated},
		"Truncated":  {[]byte{0x81, 0x80}, 0, 0, ErrTruncated},
		"Overflow":   {[]byte{0x82, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, 0, ErrOverflow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testRead(t, ReadMinimal[uint64], tc)
		})
	}
}

func TestReadMinimal8(t *testing.T) {
	tests := map[string]readTestCase[uint8]{
		"SingleByte": {[]byte{0x05}, 1, 5, nil},
		"Max":        {[]byte{0x81, 0x7F}, 2, 255, nil},
		"Overflow":   {[]byte{0x85, 0x01, 0x00}, 0, 0, ErrOverflow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testRead(t, ReadMinimal[uint8], tc)
		})
	}
}

//endregion

//region Write Tests

func Test_Write(t *testing.T) {
	tests := []writeTestcase[uint64]{
		{0, []byte{0x00}},
		{25, []byte{25}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{641, []byte{0x85, 0x01}},
		{113549, []byte{0x86, 0xF7, 0x0D}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(tc.value, 10), func(t *testing.T) {
			testWrite(t, tc)
		})
	}
}

func TestWrite8(t *testing.T) {
	tests := []writeTestcase[uint8]{
		{0, []byte{0x00}},
		{200, []byte{0x81, 0x48}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(uint64(tc.value), 10), func(t *testing.T) {
			testWrite(t, tc)
		})
	}
}

//endregion

func BenchmarkSize(b *testing.B) {
	for b.Loop() {
		Size(uint64(113549))
	}
}
