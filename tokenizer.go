package flatfiles

import "bytes"

// Candidate separators in detection priority order.
var separatorPriority = [...]byte{'\t', ';', ',', '|', ' '}

// scanState collects all mutable state of one parse. It is created,
// driven and discarded inside a single parse call; the trie and Table
// expose only immutable views afterwards.
type scanState struct {
	buf  *inputBuffer
	trie interner
	opts Options

	separator    byte
	spaceHeaders bool
	columns      int
	cellCap      int

	cells      []uint32
	unexpected []UnexpectedCell

	// per-line assembly state
	lineSize       int
	leadingEmpties int
}

// detectSeparator guesses the separator from the first line: skip
// leading spaces and newlines, then count candidate bytes up to the
// first CR/LF inside the first window. The first candidate with a
// nonzero count wins and fixes the column count; a line without any
// candidate yields a single TAB-separated column.
func (s *scanState) detectSeparator() error {
	b := s.buf
	for {
		for b.start < b.end {
			c := b.data[b.start]
			if c != ' ' && c != '\n' && c != '\r' {
				goto detect
			}
			b.start++
		}
		if b.eof {
			break
		}
		if err := b.refill(); err != nil {
			return err
		}
	}
detect:
	var counts [len(separatorPriority)]int
	for i := b.start; i < b.end; i++ {
		c := b.data[i]
		if c == '\n' || c == '\r' {
			break
		}
		for j, cand := range separatorPriority {
			if c == cand {
				counts[j]++
			}
		}
	}
	s.separator = '\t'
	s.columns = 1
	for j, cand := range separatorPriority {
		if counts[j] > 0 {
			s.separator = cand
			s.columns = counts[j] + 1
			break
		}
	}
	if s.separator == ' ' {
		s.spaceHeaders = true
	}
	return nil
}

// run drives the main scan: locate cell terminators (unquoted separator,
// CR or LF), extract and intern each cell, and assemble lines until the
// input or the cell cap is exhausted.
func (s *scanState) run() error {
	b := s.buf
	sep := s.separator
	pos := b.start
	inQuote := false
	nQuotes := 0
	firstLine := true

	for len(s.cells) < s.cellCap {
		if pos >= b.end {
			if !b.isFull() {
				shift := b.start
				if err := b.refill(); err != nil {
					return err
				}
				pos -= shift
				continue
			}
			if b.eof {
				// end of input: the tail is the final cell
				if b.start < b.end || s.lineSize > 0 || s.leadingEmpties > 0 {
					s.appendCell(extractCell(b.data[b.start:b.end], nQuotes))
					b.start = b.end
					s.endLine()
				}
				break
			}
			// window saturated with no terminator in sight: the cell is
			// cut at the window boundary and the remainder continues as
			// a fresh cell on the same line
			s.appendCell(extractCell(b.data[b.start:b.end], nQuotes))
			b.start = b.end
			inQuote = false
			nQuotes = 0
			continue
		}

		c := b.data[pos]
		if inQuote {
			if c == '"' {
				if pos+1 >= b.end && !b.isFull() {
					shift := b.start
					if err := b.refill(); err != nil {
						return err
					}
					pos -= shift
					continue
				}
				if pos+1 < b.end && b.data[pos+1] == '"' {
					nQuotes++
					pos += 2
					continue
				}
				inQuote = false
			}
			pos++
			continue
		}
		if c == '"' && pos == b.start {
			inQuote = true
			nQuotes = 1
			pos++
			continue
		}
		if c == sep || c == '\n' || c == '\r' {
			s.appendCell(extractCell(b.data[b.start:pos], nQuotes))
			if c == '\n' || c == '\r' {
				s.endLine()
				if firstLine {
					firstLine = false
					if s.spaceHeaders {
						sep = '\t'
					}
				}
			}
			pos++
			b.start = pos
			nQuotes = 0
			continue
		}
		pos++
	}
	return nil
}

// appendCell feeds one extracted cell into line assembly. Empty cells at
// the line start are withheld until a non-empty cell proves the line
// non-empty; cells beyond the column count are captured as unexpected.
func (s *scanState) appendCell(span []byte) {
	if len(span) == 0 {
		if s.lineSize == 0 {
			s.leadingEmpties++
			return
		}
		if s.lineSize < s.columns && len(s.cells) < s.cellCap {
			s.cells = append(s.cells, 0)
		}
		s.lineSize++
		return
	}
	for ; s.leadingEmpties > 0; s.leadingEmpties-- {
		if s.lineSize < s.columns && len(s.cells) < s.cellCap {
			s.cells = append(s.cells, 0)
		}
		s.lineSize++
	}
	if s.lineSize >= s.columns {
		content := make([]byte, len(span))
		copy(content, span)
		s.unexpected = append(s.unexpected, UnexpectedCell{
			Line:    len(s.cells)/s.columns - 1,
			Column:  s.lineSize,
			Content: content,
		})
	} else if len(s.cells) < s.cellCap {
		s.cells = append(s.cells, s.trie.Intern(span))
	}
	s.lineSize++
}

// endLine closes the current line: a line that produced at least one
// cell is padded with zeros up to the column count, a line of nothing
// but empty cells is dropped entirely.
func (s *scanState) endLine() {
	if s.lineSize > 0 {
		for s.lineSize < s.columns && len(s.cells) < s.cellCap {
			s.cells = append(s.cells, 0)
			s.lineSize++
		}
	}
	s.lineSize = 0
	s.leadingEmpties = 0
}

// extractCell applies quote processing and trimming to a raw cell span.
// A span that opened with a quote and closes with one loses both; inner
// doubled quotes collapse in place within the window. Spans with
// ill-formed quoting are kept verbatim. Spaces are trimmed last.
func extractCell(span []byte, nQuotes int) []byte {
	if nQuotes > 0 && len(span) > 1 && span[len(span)-1] == '"' {
		span = span[1 : len(span)-1]
		if nQuotes > 1 {
			span = collapseQuotes(span)
		}
	}
	return bytes.Trim(span, " ")
}

// collapseQuotes rewrites "" pairs to " in place and returns the
// shortened span.
func collapseQuotes(span []byte) []byte {
	w := 0
	for r := 0; r < len(span); r++ {
		span[w] = span[r]
		w++
		if span[r] == '"' && r+1 < len(span) && span[r+1] == '"' {
			r++
		}
	}
	return span[:w]
}
