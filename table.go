package flatfiles

import "fmt"

// UnexpectedCell records a non-empty cell that appeared beyond the
// column count on its line. Line and Column are zero-based.
type UnexpectedCell struct {
	Line    int
	Column  int
	Content []byte
}

// Table is the parse result: a dense Lines×Columns matrix of interned
// cell identifiers plus the ordered table of distinct contents.
//
// Content[0] is the empty sequence by construction; identifiers are
// dense and assigned in first-seen order, so a value k > 0 only ever
// appears after the first occurrence of k-1. A Table is immutable once
// constructed and safe to share for concurrent reads.
type Table struct {
	// Columns is the column count fixed by separator detection; 0 for
	// an input that produced no cells.
	Columns int

	// Cells holds the identifier at line L, column C at L·Columns + C.
	Cells []uint32

	// Content maps identifiers back to byte sequences.
	Content [][]byte

	// Unexpected records non-empty cells beyond Columns on their line.
	Unexpected []UnexpectedCell

	// Separator is the cell separator actually used for data lines.
	Separator byte

	// SpaceSeparatedHeaders is set when the header line was split on
	// spaces while data lines use TAB.
	SpaceSeparatedHeaders bool

	// Encoding is the detected file encoding, if any BOM was present.
	Encoding Encoding

	// Truncated is set when the parse stopped at the effective cell
	// cap. A truncated table may end in a partial line.
	Truncated bool
}

// Lines returns the number of complete lines in the matrix.
func (t *Table) Lines() int {
	if t.Columns == 0 {
		return 0
	}
	return len(t.Cells) / t.Columns
}

// ContentLines returns the number of lines below the header.
func (t *Table) ContentLines() int {
	if l := t.Lines(); l > 1 {
		return l - 1
	}
	return 0
}

// Cell returns the byte content at a line and column. The slice is
// backed by the content table and must not be modified.
func (t *Table) Cell(line, column int) []byte {
	return t.Content[t.Cells[line*t.Columns+column]]
}

// CheckConsistency verifies the structural invariants of the matrix. It
// is the gatekeeper for externally constructed tables: empty content at
// identifier 0, identifiers in range, a rectangular cell vector, and
// dense first-seen identifier ordering.
func (t *Table) CheckConsistency() error {
	if t.Columns == 0 {
		if len(t.Cells) != 0 {
			return fmt.Errorf("%w: %d cells with zero columns", ErrInconsistent, len(t.Cells))
		}
		if len(t.Content) > 1 {
			return fmt.Errorf("%w: %d contents with zero columns", ErrInconsistent, len(t.Content))
		}
		if len(t.Content) == 1 && len(t.Content[0]) != 0 {
			return fmt.Errorf("%w: content 0 is not empty", ErrInconsistent)
		}
		return nil
	}
	if len(t.Content) == 0 || len(t.Content[0]) != 0 {
		return fmt.Errorf("%w: content 0 is not the empty sequence", ErrInconsistent)
	}
	if len(t.Cells)%t.Columns != 0 {
		return fmt.Errorf("%w: %d cells not a multiple of %d columns", ErrInconsistent, len(t.Cells), t.Columns)
	}
	next := uint32(1)
	for i, id := range t.Cells {
		if int(id) >= len(t.Content) {
			return fmt.Errorf("%w: identifier %d out of range at position %d", ErrInconsistent, id, i)
		}
		if id > next {
			return fmt.Errorf("%w: identifier %d at position %d before first occurrence of %d", ErrInconsistent, id, i, next)
		}
		if id == next {
			next++
		}
	}
	return nil
}
