package flatfiles

import (
	"fmt"
	"io"

	"github.com/dimchansky/utfbom"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies the file encoding detected from a byte-order mark.
type Encoding int

const (
	// EncodingUnknown means no BOM was found; the source is treated as
	// an 8-bit superset of ASCII and passed through untouched.
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	}
	return "unknown"
}

// inputBuffer is a fixed-capacity byte window over a byte source.
//
// Invariant: 0 ≤ start ≤ end ≤ len(data). The tokenizer advances start
// as it consumes cells; only refill advances end. UTF-16 sources are
// replaced at construction by a streaming transcoder, so the window
// always holds UTF-8 (or raw 8-bit) bytes.
type inputBuffer struct {
	data  []byte
	start int
	end   int
	src   io.Reader
	eof   bool
	enc   Encoding
}

// newInputBuffer wraps src, detects and strips a leading byte-order
// mark, installs a UTF-16 transcoder when one is called for, and
// performs the initial fill.
func newInputBuffer(src io.Reader, size int) (*inputBuffer, error) {
	if size < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBufferTooSmall, size)
	}
	skipped, bom := utfbom.Skip(src)
	b := &inputBuffer{
		data: make([]byte, size),
		src:  skipped,
	}
	switch bom {
	case utfbom.UTF8:
		b.enc = EncodingUTF8
	case utfbom.UTF16LittleEndian:
		b.enc = EncodingUTF16LE
		b.src = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Reader(skipped)
	case utfbom.UTF16BigEndian:
		b.enc = EncodingUTF16BE
		b.src = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Reader(skipped)
	}
	if err := b.refill(); err != nil {
		return nil, err
	}
	return b, nil
}

// refill compacts the live region start..end to offset 0, then reads
// into the tail until the window is full or the source is exhausted. A
// zero-length read marks end-of-stream.
func (b *inputBuffer) refill() error {
	if b.start > 0 {
		copy(b.data, b.data[b.start:b.end])
		b.end -= b.start
		b.start = 0
	}
	for b.end < len(b.data) && !b.eof {
		n, err := b.src.Read(b.data[b.end:])
		b.end += n
		if err == io.EOF || (n == 0 && err == nil) {
			b.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
	}
	return nil
}

// isFull reports whether the live region saturates the window or the
// source has signaled end-of-stream. When isFull returns false, a refill
// is guaranteed to make progress.
func (b *inputBuffer) isFull() bool {
	return b.eof || b.end-b.start == len(b.data)
}
