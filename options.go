package flatfiles

import "fmt"

// MinReadBufferSize is the smallest accepted input window. Cells longer
// than the window are split at the window boundary, so callers with very
// wide cells should raise ReadBufferSize well above this floor.
const MinReadBufferSize = 4096

// DefaultCellCap is the advisory maximum byte length of a single interned
// cell, for reasoning about worst-case per-lookup work. The parser does
// not enforce it; the trie processes longer cells correctly.
const DefaultCellCap = 4096

// Options configures a parse.
//
// MaxLineCount and MaxCellCount bound the data portion of the input; the
// header line is always retained on top of them.
type Options struct {
	// MaxLineCount is the upper bound on data lines (the header line is
	// not counted).
	MaxLineCount int

	// MaxCellCount is the upper bound on data cells (header cells are
	// not counted).
	MaxCellCount int

	// ReadBufferSize is the input window capacity in bytes, at least
	// MinReadBufferSize.
	ReadBufferSize int
}

// DefaultOptions returns a configuration suitable for files up to a few
// million cells.
func DefaultOptions() Options {
	return Options{
		MaxLineCount:   1 << 20,
		MaxCellCount:   1 << 24,
		ReadBufferSize: 1 << 16,
	}
}

// validate reports ErrOptionOutOfRange for caps below zero or a window
// below MinReadBufferSize.
func (o Options) validate() error {
	if o.MaxLineCount < 0 {
		return fmt.Errorf("%w: max line count %d", ErrOptionOutOfRange, o.MaxLineCount)
	}
	if o.MaxCellCount < 0 {
		return fmt.Errorf("%w: max cell count %d", ErrOptionOutOfRange, o.MaxCellCount)
	}
	if o.ReadBufferSize < MinReadBufferSize {
		return fmt.Errorf("%w: read buffer size %d (minimum %d)", ErrOptionOutOfRange, o.ReadBufferSize, MinReadBufferSize)
	}
	return nil
}

// cellCap computes the effective bound on the cell vector for a detected
// column count: min(MaxCellCount, MaxLineCount·columns) plus one header
// line.
func (o Options) cellCap(columns int) int {
	cap := o.MaxCellCount
	if byLines := o.MaxLineCount * columns; byLines < cap {
		cap = byLines
	}
	return cap + columns
}
