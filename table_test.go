package flatfiles

import (
	"errors"
	"testing"
)

func consistent(columns int, cells []uint32, content []string) *Table {
	t := &Table{Columns: columns, Cells: cells}
	for _, c := range content {
		t.Content = append(t.Content, []byte(c))
	}
	return t
}

func TestCheckConsistencyAccepts(t *testing.T) {
	tables := []*Table{
		consistent(0, nil, nil),
		consistent(0, nil, []string{""}),
		consistent(2, []uint32{1, 2, 2, 0}, []string{"", "a", "b"}),
		consistent(1, []uint32{1, 2, 3}, []string{"", "x", "y", "z"}),
	}
	for i, tbl := range tables {
		if err := tbl.CheckConsistency(); err != nil {
			t.Fatalf("table %d should be consistent: %v", i, err)
		}
	}
}

func TestCheckConsistencyRejects(t *testing.T) {
	tables := map[string]*Table{
		"cells with zero columns":    consistent(0, []uint32{0}, []string{""}),
		"two contents, zero columns": consistent(0, nil, []string{"", "a"}),
		"non-empty content zero":     consistent(1, []uint32{1}, []string{"x", "y"}),
		"identifier out of range":    consistent(1, []uint32{1, 5}, []string{"", "a"}),
		"not rectangular":            consistent(2, []uint32{1, 0, 1}, []string{"", "a"}),
		"dense ordering violated":    consistent(2, []uint32{2, 1, 0, 0}, []string{"", "a", "b"}),
		"identifier gap":             consistent(1, []uint32{1, 3}, []string{"", "a", "b", "c"}),
	}
	for name, tbl := range tables {
		err := tbl.CheckConsistency()
		if !errors.Is(err, ErrInconsistent) {
			t.Fatalf("%s: expected ErrInconsistent, got %v", name, err)
		}
	}
}

func TestCellAccess(t *testing.T) {
	tbl := consistent(2, []uint32{1, 2, 0, 1}, []string{"", "a", "b"})
	if got := string(tbl.Cell(0, 1)); got != "b" {
		t.Fatalf("Cell(0,1) = %q, want b", got)
	}
	if got := string(tbl.Cell(1, 0)); got != "" {
		t.Fatalf("Cell(1,0) = %q, want empty", got)
	}
	if got := string(tbl.Cell(1, 1)); got != "a" {
		t.Fatalf("Cell(1,1) = %q, want a", got)
	}
}

func TestLineCounts(t *testing.T) {
	tbl := consistent(3, []uint32{1, 2, 3, 0, 0, 1}, []string{"", "a", "b", "c"})
	if tbl.Lines() != 2 {
		t.Fatalf("Lines() = %d, want 2", tbl.Lines())
	}
	if tbl.ContentLines() != 1 {
		t.Fatalf("ContentLines() = %d, want 1", tbl.ContentLines())
	}
	empty := consistent(0, nil, []string{""})
	if empty.Lines() != 0 || empty.ContentLines() != 0 {
		t.Fatalf("empty table should have zero lines")
	}
}
