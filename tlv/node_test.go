package tlv

import (
	"slices"
	"testing"

	"codello.dev/der"
)

// tree is SEQUENCE { INTEGER 1, SEQUENCE { INTEGER 2, INTEGER 3 }, INTEGER 4 }.
var tree = []byte{
	0x30, 0x0E,
	0x02, 0x01, 0x01,
	0x30, 0x06, 0x02, 0x01, 0x02, 0x02, 0x01, 0x03,
	0x02, 0x01, 0x04,
}

// values returns the first content octet of each primitive node in c.
func values(c Nodes) []byte {
	var ret []byte
	for n := range c.All() {
		if n.Constructed() {
			ret = append(ret, 0xFF)
			continue
		}
		ret = append(ret, n.Data()[0])
	}
	return ret
}

func TestNodes_All(t *testing.T) {
	root, err := Parse(tree)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	children := root.Children()
	if got, want := values(children), []byte{0x01, 0xFF, 0x04}; !slices.Equal(got, want) {
		t.Errorf("children = % X, want % X", got, want)
	}
	// a second traversal must yield the same nodes
	if got, want := values(children), []byte{0x01, 0xFF, 0x04}; !slices.Equal(got, want) {
		t.Errorf("second traversal = % X, want % X", got, want)
	}

	var inner Node
	for n := range children.All() {
		if n.Constructed() {
			inner = n
			break
		}
	}
	if got, want := values(inner.Children()), []byte{0x02, 0x03}; !slices.Equal(got, want) {
		t.Errorf("inner children = % X, want % X", got, want)
	}
	if got, want := inner.EncodedBytes, tree[5:13]; !slices.Equal(got, want) {
		t.Errorf("inner.EncodedBytes = % X, want % X", got, want)
	}
	if got, want := inner.Header(), (Header{der.Universal(der.TagSequence), true, 6}); got != want {
		t.Errorf("inner.Header() = %v, want %v", got, want)
	}
}

func TestIterator(t *testing.T) {
	root, err := Parse(tree)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	it := root.Children().Iter()
	other := root.Children().Iter()

	peeked, ok := it.Peek()
	if !ok {
		t.Fatalf("Peek() = false, want true")
	}
	again, _ := it.Peek()
	if !slices.Equal(peeked.EncodedBytes, again.EncodedBytes) {
		t.Errorf("repeated Peek() = % X, want % X", again.EncodedBytes, peeked.EncodedBytes)
	}
	next, ok := it.Next()
	if !ok || !slices.Equal(next.EncodedBytes, peeked.EncodedBytes) {
		t.Errorf("Next() = % X, want % X", next.EncodedBytes, peeked.EncodedBytes)
	}

	count := 1
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
	}
	if count != 3 {
		t.Errorf("iterated %d nodes, want 3", count)
	}
	if _, ok := it.Peek(); ok {
		t.Errorf("Peek() on exhausted iterator = true")
	}
	if _, ok := it.Next(); ok {
		t.Errorf("Next() on exhausted iterator = true")
	}

	// iterators are independent of each other
	first, ok := other.Next()
	if !ok || first.Data()[0] != 0x01 {
		t.Errorf("independent Next() = % X, want 02 01 01", first.EncodedBytes)
	}
}

func TestNode_primitive(t *testing.T) {
	root, err := Parse([]byte{0x04, 0x02, 0xCA, 0xFE})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if root.Children().Count() != 0 {
		t.Errorf("primitive node has children")
	}
	if _, ok := root.Children().Iter().Next(); ok {
		t.Errorf("Iter().Next() on primitive node = true")
	}
	if _, ok := root.Content.(Primitive); !ok {
		t.Errorf("Content = %T, want Primitive", root.Content)
	}
}

func TestNode_SerializeDER(t *testing.T) {
	root, err := Parse(tree)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := Serialize(root)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !slices.Equal(got, tree) {
		t.Errorf("Serialize() = % X, want % X", got, tree)
	}
}
