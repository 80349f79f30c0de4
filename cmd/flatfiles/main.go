// flatfiles - parse a delimited flat file into an interned cell matrix
//
// Usage:
//
//	flatfiles [flags] [file]
//
// Parses the file (or stdin) and prints parse diagnostics. With -o the
// matrix is also serialized in the versioned wire format.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/Fred-Jacobs/lokad-flatfiles"
)

func main() {
	maxLines := flag.IntP("max-lines", "l", 1<<20, "upper bound on data lines")
	maxCells := flag.IntP("max-cells", "c", 1<<24, "upper bound on data cells")
	bufSize := flag.IntP("buffer", "b", 1<<16, "read buffer size in bytes")
	output := flag.StringP("output", "o", "", "write the wire-format matrix to this file")
	dump := flag.Bool("dump", false, "print every line of the matrix")
	flag.Parse()

	var input io.Reader = os.Stdin
	name := "stdin"
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "flatfiles:", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
		name = args[0]
	}

	opts := flatfiles.Options{
		MaxLineCount:   *maxLines,
		MaxCellCount:   *maxCells,
		ReadBufferSize: *bufSize,
	}
	tbl, err := flatfiles.Parse(input, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flatfiles:", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d lines × %d columns, %d distinct contents\n",
		name, tbl.Lines(), tbl.Columns, len(tbl.Content))
	fmt.Printf("separator=%q space-separated-headers=%v encoding=%s truncated=%v\n",
		string(tbl.Separator), tbl.SpaceSeparatedHeaders, tbl.Encoding, tbl.Truncated)
	for _, u := range tbl.Unexpected {
		fmt.Printf("unexpected cell at line %d, column %d: %q\n", u.Line, u.Column, u.Content)
	}
	if *dump {
		for line := 0; line < tbl.Lines(); line++ {
			for col := 0; col < tbl.Columns; col++ {
				if col > 0 {
					fmt.Print("\t")
				}
				fmt.Printf("%s", tbl.Cell(line, col))
			}
			fmt.Println()
		}
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintln(os.Stderr, "flatfiles:", err)
			os.Exit(1)
		}
		if _, err := tbl.WriteTo(f); err != nil {
			f.Close()
			fmt.Fprintln(os.Stderr, "flatfiles:", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "flatfiles:", err)
			os.Exit(1)
		}
	}
}
