package tlv

import (
	"slices"

	"codello.dev/der"
)

// Serializer is implemented by values that can write themselves as DER.
type Serializer interface {
	// SerializeDER writes the complete encoding of the value, including its
	// header, into w.
	SerializeDER(w *Writer) error
}

// Serialize returns the DER encoding of s.
func Serialize(s Serializer) ([]byte, error) {
	var w Writer
	if err := s.SerializeDER(&w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Writer builds DER-encoded data values in memory. The zero value is an empty
// Writer ready to use. A Writer must not be copied after first use.
//
// Constructed values are written via callbacks that receive a fresh child
// Writer. When the callback returns, the contents of the child are appended to
// the parent, prefixed with the appropriate header.
type Writer struct {
	buf []byte
}

// Bytes returns the bytes written so far. The returned slice is valid until the
// next modification of w.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset discards all written bytes but keeps the allocated buffer.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WritePrimitive writes a primitive TLV with the given identifier and content
// octets.
func (w *Writer) WritePrimitive(id der.Identifier, content []byte) {
	w.buf = slices.Grow(w.buf, der.IdentifierSize(id)+lengthSize(len(content))+len(content))
	w.buf = AppendHeader(w.buf, Header{Identifier: id, Length: len(content)})
	w.buf = append(w.buf, content...)
}

// WriteConstructed writes a constructed TLV with the given identifier. The
// contents are produced by fn which writes into a separate child Writer. If fn
// returns an error, nothing is written to w.
func (w *Writer) WriteConstructed(id der.Identifier, fn func(w *Writer) error) error {
	var child Writer
	if err := fn(&child); err != nil {
		return err
	}
	w.buf = AppendHeader(w.buf, Header{Identifier: id, Constructed: true, Length: len(child.buf)})
	w.buf = append(w.buf, child.buf...)
	return nil
}

// WriteSequence writes a constructed SEQUENCE. See [Writer.WriteConstructed].
func (w *Writer) WriteSequence(fn func(w *Writer) error) error {
	return w.WriteConstructed(der.Universal(der.TagSequence), fn)
}

// WriteSet writes a constructed SET. See [Writer.WriteConstructed]. WriteSet
// does not sort the elements written by fn.
func (w *Writer) WriteSet(fn func(w *Writer) error) error {
	return w.WriteConstructed(der.Universal(der.TagSet), fn)
}

// WriteRaw appends b to w as-is. b should hold one or more complete TLVs.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Write writes s into w. This is equivalent to s.SerializeDER(w).
func (w *Writer) Write(s Serializer) error {
	return s.SerializeDER(w)
}
