// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"codello.dev/der"
)

// algorithmIdentifier is the DER encoding of an AlgorithmIdentifier for
// sha256WithRSAEncryption.
var algorithmIdentifier = []byte{
	0x30, 0x0D,
	0x06, 0x09, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B,
	0x05, 0x00,
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(bytes.NewReader(stdin), &out)
	err := app.Run(append([]string{"derdump"}, args...))
	return out.String(), err
}

func TestDump(t *testing.T) {
	data := []byte{
		0x30, 0x1D,
		0x02, 0x01, 0x2A,
		0x0C, 0x02, 'h', 'i',
		0x31, 0x03, 0x01, 0x01, 0xFF,
		0x03, 0x02, 0x04, 0xF0,
		0x04, 0x02, 0xCA, 0xFE,
		0x80, 0x01, 0x07,
		0x02, 0x02, 0x00, 0x01,
		0xA1, 0x00,
	}
	var out bytes.Buffer
	require.NoError(t, dump(&out, data, options{indent: 2}))
	require.Equal(t, strings.Join([]string{
		"[UNIVERSAL 16] (8 elements)",
		`  [UNIVERSAL 2] 42`,
		`  [UNIVERSAL 12] "hi"`,
		`  [UNIVERSAL 17] (1 elements)`,
		`    [UNIVERSAL 1] true`,
		`  [UNIVERSAL 3] (4 bits) F0`,
		`  [UNIVERSAL 4] CA FE`,
		`  [0] 07`,
		`  [UNIVERSAL 2] 00 01 (der: InvalidIntegerEncoding: integer not minimally-encoded)`,
		`  [1] (0 elements)`,
		"",
	}, "\n"), out.String())
}

func TestDump_parseError(t *testing.T) {
	var out bytes.Buffer
	err := dump(&out, []byte{0x30, 0x05, 0x02, 0x01}, options{indent: 2})
	require.ErrorIs(t, err, der.ErrTruncatedField)
	require.Empty(t, out.String())
}

func TestApp(t *testing.T) {
	path := writeFile(t, "alg.der", algorithmIdentifier)

	out, err := run(t, nil, path)
	require.NoError(t, err)
	require.Equal(t, "[UNIVERSAL 16] (2 elements)\n"+
		"  [UNIVERSAL 6] 1.2.840.113549.1.1.11\n"+
		"  [UNIVERSAL 5] NULL\n", out)
}

func TestApp_flags(t *testing.T) {
	out, err := run(t, algorithmIdentifier, "--hex", "--indent", "1", "-")
	require.NoError(t, err)
	require.Equal(t, "[UNIVERSAL 16] (2 elements)  [30 0D 06 09 2A 86 48 86 F7 0D 01 01 0B 05 00]\n"+
		" [UNIVERSAL 6] 1.2.840.113549.1.1.11  [06 09 2A 86 48 86 F7 0D 01 01 0B]\n"+
		" [UNIVERSAL 5] NULL  [05 00]\n", out)

	_, err = run(t, nil, "--indent", "-1", "-")
	require.Error(t, err)
}

func TestApp_multipleFiles(t *testing.T) {
	good := writeFile(t, "good.der", []byte{0x05, 0x00})
	bad := writeFile(t, "bad.der", []byte{0x05, 0x01})
	missing := filepath.Join(t.TempDir(), "missing.der")

	out, err := run(t, nil, bad, missing, good)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.ErrorIs(t, err, der.ErrTruncatedField)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, bad+":\n\n"+missing+":\n\n"+good+":\n[UNIVERSAL 5] NULL\n", out)
}

func TestApp_allFilesFail(t *testing.T) {
	first := writeFile(t, "first.der", []byte{0x05, 0x01})
	second := writeFile(t, "second.der", []byte{0x30})

	out, err := run(t, nil, first, second)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.ErrorIs(t, err, der.ErrTruncatedField)
	require.Equal(t, first+":\n\n"+second+":\n", out)
}

func TestApp_strict(t *testing.T) {
	good := writeFile(t, "good.der", []byte{0x05, 0x00})
	bad := writeFile(t, "bad.der", []byte{0x05, 0x00, 0x00})

	out, err := run(t, nil, "--strict", bad, good)
	require.ErrorIs(t, err, der.ErrInvalidObject)
	require.Equal(t, 1, len(multierr.Errors(err)))
	require.Equal(t, bad+":\n", out)
}

func TestApp_noFiles(t *testing.T) {
	_, err := run(t, nil)
	require.Error(t, err)
}
