package tlv

import (
	"github.com/cockroachdb/errors"

	"codello.dev/der"
)

// Resource limits enforced by [Parse].
const (
	// MaxDepth is the maximum nesting depth of a parsed tree. The root node has
	// depth 1.
	MaxDepth = 50
	// MaxNodes is the maximum number of nodes in a parsed tree.
	MaxNodes = 100_000
)

// record is a single parsed TLV. Records are stored in a flat list in the order
// in which they appear in the input. The descendants of a constructed record
// immediately follow it in the list and end at the first subsequent record
// whose depth is less than or equal to its own.
type record struct {
	header  Header
	depth   int
	encoded []byte // whole TLV
	data    []byte // content octets
}

// parser holds the state of a single call to Parse.
type parser struct {
	records []record
}

// Parse parses b as a single DER-encoded data value. The returned node and all
// of its descendants reference b, so b must not be modified while the tree is
// in use.
//
// Parse fails if b contains anything else than exactly one TLV, if any TLV
// violates the DER rules of the syntax layer, or if the tree exceeds
// [MaxDepth] or [MaxNodes]. Errors are returned as [*SyntaxError] values
// wrapping a [der.Error]. There is no partial result.
func Parse(b []byte) (Node, error) {
	var p parser
	n, err := p.parseNode(b, 0, 1, Header{})
	if err != nil {
		return Node{}, err
	}
	if n < len(b) {
		return Node{}, &SyntaxError{
			Err:        der.Errorf(der.CodeInvalidObject, "%d bytes of extra data after the root value", len(b)-n),
			ByteOffset: n,
		}
	}
	root := Nodes{records: p.records, start: 0, end: len(p.records), depth: 0}
	node, _ := root.nodeAt(0)
	return node, nil
}

// parseNode parses the TLV at the start of b and appends its records to
// p.records. offset is the position of b within the whole input and parent the
// header of the surrounding constructed TLV. It returns the number of bytes of
// b occupied by the TLV.
func (p *parser) parseNode(b []byte, offset int, depth int, parent Header) (int, error) {
	if len(p.records) >= MaxNodes {
		return 0, &SyntaxError{Err: errors.WithStack(ErrTooManyNodes), ByteOffset: offset, Header: parent}
	}
	if depth > MaxDepth {
		return 0, &SyntaxError{Err: errors.WithStack(ErrTooDeep), ByteOffset: offset, Header: parent}
	}
	h, hl, err := readHeader(b)
	if err != nil {
		return 0, &SyntaxError{Err: err, ByteOffset: offset, Header: parent}
	}
	if h.Length > len(b)-hl {
		return 0, &SyntaxError{
			Err:        der.Errorf(der.CodeTruncatedField, "%v needs %d bytes but only %d remain", h.Identifier, h.Length, len(b)-hl),
			ByteOffset: offset,
			Header:     parent,
		}
	}
	size := hl + h.Length
	data := b[hl:size:size]
	p.records = append(p.records, record{
		header:  h,
		depth:   depth,
		encoded: b[:size:size],
		data:    data,
	})
	if h.Constructed {
		for pos := 0; pos < len(data); {
			n, err := p.parseNode(data[pos:], offset+hl+pos, depth+1, h)
			if err != nil {
				return 0, err
			}
			pos += n
		}
	}
	return size, nil
}
