package flatfiles

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 127, 128, 16383, 16384, 2097151, 268435455, 1<<31 - 1, 1<<32 - 1}
	for _, n := range values {
		buf := binary.AppendUvarint(nil, n)
		if len(buf) < 1 || len(buf) > 5 {
			t.Fatalf("varint of %d has %d bytes, want 1..5", n, len(buf))
		}
		got, read := binary.Uvarint(buf)
		if read != len(buf) || got != n {
			t.Fatalf("decode(encode(%d)) = %d (%d bytes read)", n, got, read)
		}
	}
}

func TestWireRoundTripIdempotent(t *testing.T) {
	tbl := mustParse(t, "a,b,c\n1,,2\n\"q,q\",b,a\n")

	var first bytes.Buffer
	if _, err := tbl.WriteTo(&first); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := ReadTable(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	var second bytes.Buffer
	if _, err := decoded.WriteTo(&second); err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("round trip not idempotent:\n first %v\nsecond %v", first.Bytes(), second.Bytes())
	}

	if decoded.Columns != tbl.Columns || !reflect.DeepEqual(decoded.Cells, tbl.Cells) {
		t.Fatalf("decoded matrix differs: %+v", decoded)
	}
	if !reflect.DeepEqual(decoded.Content, tbl.Content) {
		t.Fatalf("decoded contents differ: %q", decoded.Content)
	}
	if err := decoded.CheckConsistency(); err != nil {
		t.Fatalf("decoded table inconsistent: %v", err)
	}
}

func TestWireLayout(t *testing.T) {
	tbl := &Table{
		Columns: 2,
		Cells:   []uint32{1, 2, 1, 0},
		Content: [][]byte{{}, []byte("ab"), []byte("c")},
	}
	var buf bytes.Buffer
	if _, err := tbl.WriteTo(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := []byte{
		1,           // version
		2, 0,        // columns
		4, 0, 0, 0,  // cell count
		3, 0, 0, 0,  // content count
		1, 2, 1, 0,  // cells as varints
		0,           // content 0: empty
		2, 'a', 'b', // content 1
		1, 'c',      // content 2
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("wire bytes mismatch:\n got %v\nwant %v", buf.Bytes(), want)
	}
}

func TestUnknownVersionRejected(t *testing.T) {
	data := []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := ReadTable(bytes.NewReader(data)); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func TestTruncatedWireFails(t *testing.T) {
	tbl := mustParse(t, "a\tb\n1\t2\n")
	var buf bytes.Buffer
	if _, err := tbl.WriteTo(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for _, cut := range []int{1, 5, 9, buf.Len() - 1} {
		if _, err := ReadTable(bytes.NewReader(buf.Bytes()[:cut])); err == nil {
			t.Fatalf("expected an error decoding %d of %d bytes", cut, buf.Len())
		}
	}
}

func TestEmptyTableWire(t *testing.T) {
	tbl := mustParse(t, "")
	var buf bytes.Buffer
	if _, err := tbl.WriteTo(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := ReadTable(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Columns != 0 || len(decoded.Cells) != 0 || len(decoded.Content) != 1 {
		t.Fatalf("unexpected empty-table decode: %+v", decoded)
	}
}
