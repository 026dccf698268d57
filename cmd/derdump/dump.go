// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"codello.dev/der/codec"
	"codello.dev/der/tlv"
)

// options control the output of dump.
type options struct {
	hex    bool // print encoded bytes
	indent int  // spaces per level
}

// dump parses data as a single DER data value and prints its tree to w.
func dump(w io.Writer, data []byte, opts options) error {
	n, err := tlv.Parse(data)
	if err != nil {
		return err
	}
	return dumpNode(w, n, 0, opts)
}

func dumpNode(w io.Writer, n tlv.Node, depth int, opts options) error {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", depth*opts.indent))
	b.WriteString(n.Identifier.String())
	if n.Constructed() {
		fmt.Fprintf(&b, " (%d elements)", n.Children().Count())
	} else if s := summarize(n); s != "" {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	if opts.hex {
		fmt.Fprintf(&b, "  [% X]", n.EncodedBytes)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if !n.Constructed() {
		return nil
	}
	for child := range n.Children().All() {
		if err := dumpNode(w, child, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

// summarize returns a short description of the value of the primitive node n.
// Values that cannot be decoded are printed in hex followed by the reason.
func summarize(n tlv.Node) string {
	v, err := codec.Decode(n)
	if err != nil {
		return fmt.Sprintf("% X (%v)", n.Data(), err)
	}
	switch v := v.(type) {
	case codec.RawValue, codec.OctetString:
		return fmt.Sprintf("% X", n.Data())
	case codec.Null:
		return "NULL"
	case codec.BitString:
		return fmt.Sprintf("(%d bits) % X", v.Len(), v.Bytes)
	case codec.UTF8String, codec.NumericString, codec.PrintableString, codec.TeletexString,
		codec.VideotexString, codec.IA5String, codec.GraphicString, codec.VisibleString,
		codec.GeneralString, codec.UniversalString, codec.BMPString:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
