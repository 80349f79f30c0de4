package flatfiles

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Wire layout, little-endian and byte-packed:
//
//	u8  version (= wireVersion)
//	u16 columns
//	u32 cell count
//	u32 content count
//	cell-count uvarints, one identifier each
//	content-count records: uvarint length, then the raw bytes
//
// Identifiers and lengths use the base-128 varint of encoding/binary:
// seven payload bits per byte, the top bit flags continuation.
const wireVersion = 1

const wireHeaderLen = 1 + 2 + 4 + 4

// WriteTo serializes the matrix in the wire layout. The encoding is
// deterministic: equal tables yield identical bytes.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, wireHeaderLen+len(t.Cells))
	buf = append(buf, wireVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(t.Columns))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Cells)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Content)))
	for _, id := range t.Cells {
		buf = binary.AppendUvarint(buf, uint64(id))
	}
	for _, c := range t.Content {
		buf = binary.AppendUvarint(buf, uint64(len(c)))
		buf = append(buf, c...)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadTable deserializes a matrix from the wire layout. Only the
// structural fields travel on the wire; parse diagnostics (separator,
// encoding, flags) are not part of the format.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != wireVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
	var header [wireHeaderLen - 1]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := int(binary.LittleEndian.Uint16(header[0:2]))
	cellCount := int(binary.LittleEndian.Uint32(header[2:6]))
	contentCount := int(binary.LittleEndian.Uint32(header[6:10]))

	t := &Table{
		Columns: columns,
		Cells:   make([]uint32, cellCount),
		Content: make([][]byte, contentCount),
	}
	for i := range t.Cells {
		v, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("reading cell %d: %w", i, err)
		}
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("%w: identifier %d overflows u32", ErrInconsistent, v)
		}
		t.Cells[i] = uint32(v)
	}
	for i := range t.Content {
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("reading content length %d: %w", i, err)
		}
		if n > math.MaxUint32 {
			return nil, fmt.Errorf("%w: content length %d overflows u32", ErrInconsistent, n)
		}
		c := make([]byte, n)
		if _, err := io.ReadFull(br, c); err != nil {
			return nil, fmt.Errorf("reading content %d: %w", i, err)
		}
		t.Content[i] = c
	}
	return t, nil
}
