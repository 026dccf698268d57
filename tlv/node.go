package tlv

import (
	"iter"

	"codello.dev/der"
)

// Node is a single data value of a parsed tree. The Content of a node is either
// [Primitive] or [Nodes], depending on whether the data value uses the
// primitive or constructed encoding.
type Node struct {
	Identifier der.Identifier
	Content    Content

	// EncodedBytes holds the complete TLV, including the header.
	EncodedBytes []byte
}

// Content is the content of a [Node]. It is implemented by [Primitive] and
// [Nodes] only.
type Content interface {
	content()
}

// Primitive holds the content octets of a primitive data value.
type Primitive []byte

func (Primitive) content() {}

// Constructed reports whether n uses the constructed encoding.
func (n Node) Constructed() bool {
	_, ok := n.Content.(Nodes)
	return ok
}

// Data returns the content octets of a primitive node. For constructed nodes
// Data returns nil.
func (n Node) Data() []byte {
	p, _ := n.Content.(Primitive)
	return p
}

// Children returns the child nodes of a constructed node. For primitive nodes
// the returned collection is empty.
func (n Node) Children() Nodes {
	c, _ := n.Content.(Nodes)
	return c
}

// Header returns the TLV header of n.
func (n Node) Header() Header {
	c, ok := n.Content.(Nodes)
	if !ok {
		return Header{Identifier: n.Identifier, Length: len(n.Data())}
	}
	if c.start > 0 && c.start <= len(c.records) {
		return c.records[c.start-1].header
	}
	return Header{Identifier: n.Identifier, Constructed: true}
}

// SerializeDER writes the encoded bytes of n unchanged. This makes any parsed
// node a [Serializer].
func (n Node) SerializeDER(w *Writer) error {
	w.WriteRaw(n.EncodedBytes)
	return nil
}

// Nodes is the collection of children of a constructed node. A Nodes value is
// a view into the records of a parsed tree and never copies them. The zero
// value is an empty collection.
//
// Nodes can be iterated any number of times. Each call to [Nodes.All] or
// [Nodes.Iter] starts a fresh iteration that is independent of all others.
type Nodes struct {
	records    []record
	start, end int
	depth      int // depth of the parent node
}

func (Nodes) content() {}

// All returns an iterator over the nodes in c. Iterating over all nodes takes
// time linear in the number of descendants.
func (c Nodes) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for i := c.start; i < c.end; {
			n, next := c.nodeAt(i)
			if !yield(n) {
				return
			}
			i = next
		}
	}
}

// Iter returns a new [Iterator] positioned at the first node of c.
func (c Nodes) Iter() *Iterator {
	return &Iterator{c: c, i: c.start}
}

// Count returns the number of nodes in c. Count iterates over c.
func (c Nodes) Count() int {
	n := 0
	for range c.All() {
		n++
	}
	return n
}

// nodeAt returns the node at index i of c.records together with the index
// following its subtree.
func (c Nodes) nodeAt(i int) (Node, int) {
	r := c.records[i]
	end := i + 1
	for end < c.end && c.records[end].depth > c.depth+1 {
		end++
	}
	n := Node{Identifier: r.header.Identifier, EncodedBytes: r.encoded}
	if r.header.Constructed {
		n.Content = Nodes{records: c.records, start: i + 1, end: end, depth: r.depth}
	} else {
		n.Content = Primitive(r.data)
	}
	return n, end
}

// Iterator implements step-wise iteration over a [Nodes] collection.
type Iterator struct {
	c Nodes
	i int
}

// Next returns the next node and advances the iterator. If the iterator is
// exhausted, Next returns false.
func (it *Iterator) Next() (Node, bool) {
	if it.i >= it.c.end {
		return Node{}, false
	}
	n, next := it.c.nodeAt(it.i)
	it.i = next
	return n, true
}

// Peek returns the node that the next call to Next would return without
// advancing the iterator.
func (it *Iterator) Peek() (Node, bool) {
	if it.i >= it.c.end {
		return Node{}, false
	}
	n, _ := it.c.nodeAt(it.i)
	return n, true
}
