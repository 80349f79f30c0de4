package flatfiles

import (
	"bytes"
	"io"

	"github.com/Fred-Jacobs/lokad-flatfiles/intern"
)

// Parse reads a delimited flat file from src and returns the interned
// cell matrix. The parser never seeks and never fails on malformed
// content; structural oddities land in the Table's diagnostics. Errors
// come from the configuration, the window construction, or the byte
// source itself.
func Parse(src io.Reader, opts Options) (*Table, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	buf, err := newInputBuffer(src, opts.ReadBufferSize)
	if err != nil {
		return nil, err
	}
	return parse(buf, intern.New(), opts)
}

// ParseBytes parses an in-memory input.
func ParseBytes(data []byte, opts Options) (*Table, error) {
	return Parse(bytes.NewReader(data), opts)
}

// parse runs the ownership chain: input buffer → tokenizer → trie →
// Table. The trie's content table transfers to the Table at the end;
// the arena is dropped with the scan state.
func parse(buf *inputBuffer, trie interner, opts Options) (*Table, error) {
	s := &scanState{buf: buf, trie: trie, opts: opts}
	if err := s.detectSeparator(); err != nil {
		return nil, err
	}
	s.cellCap = opts.cellCap(s.columns)
	if err := s.run(); err != nil {
		return nil, err
	}

	tbl := &Table{
		Columns:               s.columns,
		Cells:                 s.cells,
		Unexpected:            s.unexpected,
		Separator:             s.separator,
		SpaceSeparatedHeaders: s.spaceHeaders,
		Encoding:              buf.enc,
		Truncated:             len(s.cells) >= s.cellCap,
	}
	if s.spaceHeaders {
		tbl.Separator = '\t'
	}
	if len(tbl.Cells) == 0 {
		tbl.Columns = 0
	}
	tbl.Content = trie.Freeze()

	tracer().Infof("parsed %d lines × %d columns: %d distinct contents, separator=%q, encoding=%s, truncated=%v",
		tbl.Lines(), tbl.Columns, len(tbl.Content), tbl.Separator, tbl.Encoding, tbl.Truncated)
	return tbl, nil
}
