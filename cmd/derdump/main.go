// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command derdump prints the structure of DER encoded files.
//
// Usage:
//
//	derdump [--hex] [--indent N] [--strict] FILE...
//
// Each data value is printed on its own line, indented by its depth. Primitive
// values are decoded where possible. A FILE of "-" reads from standard input.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

func main() {
	app := newApp(os.Stdin, os.Stdout)

	err := app.Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// newApp creates the derdump CLI app reading standard input from stdin and
// writing its output to stdout.
func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "derdump"
	app.Usage = "Print the structure of DER encoded files"
	app.UsageText = "derdump [options] FILE..."
	app.HideVersion = true
	app.Reader = stdin
	app.Writer = stdout
	// Errors are reported by main with its own exit status.
	app.ExitErrHandler = func(*cli.Context, error) {}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "hex",
			Usage: "append the encoded bytes of each data value",
		},
		&cli.IntFlag{
			Name:  "indent",
			Value: 2,
			Usage: "number of spaces per nesting level",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "stop at the first file that cannot be read or parsed",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() == 0 {
			return errors.New(app.UsageText)
		}
		opts := options{hex: c.Bool("hex"), indent: c.Int("indent")}
		if opts.indent < 0 {
			return errors.Newf("invalid indent %d", opts.indent)
		}

		var err error
		for i, name := range c.Args().Slice() {
			if c.NArg() > 1 {
				if i > 0 {
					_, _ = fmt.Fprintln(app.Writer)
				}
				_, _ = fmt.Fprintf(app.Writer, "%s:\n", name)
			}
			if dumpErr := dumpFile(app.Writer, app.Reader, name, opts); dumpErr != nil {
				dumpErr = errors.Wrapf(dumpErr, "%s", name)
				if c.Bool("strict") {
					return dumpErr
				}
				err = multierr.Append(err, dumpErr)
			}
		}
		return err
	}

	return app
}

// dumpFile prints the contents of the named file. The name "-" denotes stdin.
func dumpFile(w io.Writer, stdin io.Reader, name string, opts options) error {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}
	return dump(w, data, opts)
}
