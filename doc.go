/*
Package flatfiles converts a delimited flat data file (TSV, CSV and
friends) into a compact in-memory matrix of interned cell identifiers.

Instead of materializing every cell as its own byte slice, the parser
routes each cell through an interning trie (package intern): every
distinct byte sequence receives a dense small-integer identifier, assigned
in first-seen order, and the parse result is a Lines×Columns vector of
identifiers plus the ordered table of distinct contents. Downstream
consumers — date parsers, number parsers, memoizing converters — then
operate on integers, so the expensive per-string work happens at most
once per distinct value.

A parse is a single ownership chain: input buffer → tokenizer → trie →
Table. The tokenizer auto-detects the separator on the first line,
handles quote escaping, trimming, late-column overflow and bounded
truncation, and never fails on malformed input; structural oddities are
recorded as diagnostics on the Table instead. UTF-16 sources
(BOM-detected) are transcoded to UTF-8 on the fly.

Typical use:

	tbl, err := flatfiles.Parse(file, flatfiles.DefaultOptions())
	if err != nil {
		...
	}
	name := tbl.Cell(3, 0) // []byte, backed by the content table
*/
package flatfiles

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'flatfiles'
func tracer() tracing.Trace {
	return tracing.Select("flatfiles")
}
