package model

import (
	"reflect"
	"testing"
)

func TestTableAppendUnionColumns(t *testing.T) {
	t.Parallel()

	dst := NewTable("X", "Y")
	dst.Rows = [][]any{
		{"1", "2"},
		{"3", "4"},
	}

	src := NewTable("X", "Z")
	src.Rows = [][]any{
		{"5", "6"},
	}

	dst.Append(src)

	wantCols := []string{"X", "Y", "Z"}
	if !reflect.DeepEqual(dst.Columns, wantCols) {
		t.Fatalf("columns=%v, want %v", dst.Columns, wantCols)
	}
	if dst.RowCount() != 3 {
		t.Fatalf("rows=%d, want 3", dst.RowCount())
	}

	// 旧行的新列补 nil
	if got := dst.Cell(0, "Z"); got != nil {
		t.Fatalf("row0 Z=%v, want nil", got)
	}
	// 新行缺失的列补 nil
	if got := dst.Cell(2, "Y"); got != nil {
		t.Fatalf("row2 Y=%v, want nil", got)
	}
	if got := dst.Cell(2, "Z"); got != "6" {
		t.Fatalf("row2 Z=%v, want 6", got)
	}
}

func TestTableAppendKeepsColumnOrder(t *testing.T) {
	t.Parallel()

	dst := NewTable("A", "B")
	dst.Rows = [][]any{{"a", "b"}}

	src := NewTable("C", "A")
	src.Rows = [][]any{{"c", "a2"}}

	dst.Append(src)

	wantCols := []string{"A", "B", "C"}
	if !reflect.DeepEqual(dst.Columns, wantCols) {
		t.Fatalf("columns=%v, want %v", dst.Columns, wantCols)
	}
	if got := dst.Cell(1, "A"); got != "a2" {
		t.Fatalf("row1 A=%v, want a2", got)
	}
	if got := dst.Cell(1, "C"); got != "c" {
		t.Fatalf("row1 C=%v, want c", got)
	}
}

func TestAddConstColumn(t *testing.T) {
	t.Parallel()

	tab := NewTable("A")
	tab.Rows = [][]any{{"1"}, {"2"}}

	tab.AddConstColumn("Filename", "f1.csv")

	if tab.ColumnIndex("Filename") != 1 {
		t.Fatalf("Filename column index=%d, want 1", tab.ColumnIndex("Filename"))
	}
	for i := range tab.Rows {
		if got := tab.Cell(i, "Filename"); got != "f1.csv" {
			t.Fatalf("row%d Filename=%v, want f1.csv", i, got)
		}
	}

	// 同名列覆盖而不是新增
	tab.AddConstColumn("Filename", "f2.csv")
	if len(tab.Columns) != 2 {
		t.Fatalf("columns=%v, want 2 entries", tab.Columns)
	}
	if got := tab.Cell(0, "Filename"); got != "f2.csv" {
		t.Fatalf("row0 Filename=%v, want f2.csv", got)
	}
}

func TestSheetSelectionAddDeduplicates(t *testing.T) {
	t.Parallel()

	sel := SheetSelection{}
	sel.Add("f.xlsx", "Sales")
	sel.Add("f.xlsx", "Sales")
	sel.Add("f.xlsx", "Costs")

	if got := sel["f.xlsx"]; len(got) != 2 {
		t.Fatalf("selection=%v, want 2 entries", got)
	}
	if !sel.Contains("f.xlsx", "Sales") || !sel.Contains("f.xlsx", "Costs") {
		t.Fatalf("selection missing expected sheets: %v", sel)
	}
}
