package tabular

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"conso/internal/model"
)

// memFile 内存文件，实现 model.UploadedFile
type memFile struct {
	name string
	data []byte
}

func (f memFile) Name() string { return f.name }

func (f memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type sheetDef struct {
	name string
	rows [][]any
}

// buildWorkbook 构造内存 xlsx 字节流
func buildWorkbook(t *testing.T, sheets []sheetDef) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	keepDefault := false
	for _, s := range sheets {
		if s.name == "Sheet1" {
			keepDefault = true
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				t.Fatalf("new sheet %s: %v", s.name, err)
			}
		}
		for i, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	if !keepDefault {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("delete default sheet: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	file := memFile{name: "f1.csv", data: []byte("X,Y\n1,2\n3,4\n")}
	tab, err := Load(file, model.FileKindCSV, "")
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}

	if !reflect.DeepEqual(tab.Columns, []string{"X", "Y"}) {
		t.Fatalf("columns=%v", tab.Columns)
	}
	if tab.RowCount() != 2 {
		t.Fatalf("rows=%d, want 2", tab.RowCount())
	}
	if got := tab.Cell(1, "Y"); got != "4" {
		t.Fatalf("row1 Y=%v, want 4", got)
	}
}

func TestLoadCSVMalformed(t *testing.T) {
	t.Parallel()

	// 列数不一致
	file := memFile{name: "bad.csv", data: []byte("X,Y\n1,2,3\n")}
	_, err := Load(file, model.FileKindCSV, "")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("err=%v, want ErrUnreadable", err)
	}
}

func TestLoadExcelNamedSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, []sheetDef{
		{name: "Sales", rows: [][]any{{"A", "B"}, {"1", "2"}}},
		{name: "Costs", rows: [][]any{{"C"}, {"9"}}},
	})
	file := memFile{name: "book.xlsx", data: data}

	wb, err := OpenWorkbook(file)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	tab, err := SheetTable(wb, "Costs")
	if err != nil {
		t.Fatalf("sheet table: %v", err)
	}
	if !reflect.DeepEqual(tab.Columns, []string{"C"}) {
		t.Fatalf("columns=%v, want [C]", tab.Columns)
	}
	if tab.RowCount() != 1 || tab.Cell(0, "C") != "9" {
		t.Fatalf("unexpected table: %+v", tab)
	}
}

func TestLoadExcelMissingSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, []sheetDef{
		{name: "Sales", rows: [][]any{{"A"}}},
	})
	file := memFile{name: "book.xlsx", data: data}

	_, err := Load(file, model.FileKindExcel, "Nope")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("err=%v, want ErrUnreadable", err)
	}
}

func TestLoadExcelCorrupt(t *testing.T) {
	t.Parallel()

	file := memFile{name: "broken.xlsx", data: []byte("not a zip archive")}
	_, err := Load(file, model.FileKindExcel, "")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("err=%v, want ErrUnreadable", err)
	}
}

func TestTagAddsProvenance(t *testing.T) {
	t.Parallel()

	tab := model.NewTable("A")
	tab.Rows = [][]any{{"1"}, {"2"}}

	Tag(tab, "f.xlsx", "Sales")

	for i := range tab.Rows {
		if got := tab.Cell(i, model.ProvenanceFilename); got != "f.xlsx" {
			t.Fatalf("row%d Filename=%v", i, got)
		}
		if got := tab.Cell(i, model.ProvenanceSheetName); got != "Sales" {
			t.Fatalf("row%d Sheet Name=%v", i, got)
		}
	}
}

func TestListSheetsOrder(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, []sheetDef{
		{name: "Zeta", rows: [][]any{{"A"}}},
		{name: "Alpha", rows: [][]any{{"B"}}},
	})

	sheets, err := ListSheets(memFile{name: "b.xlsx", data: data})
	if err != nil {
		t.Fatalf("list sheets: %v", err)
	}
	if !reflect.DeepEqual(sheets, []string{"Zeta", "Alpha"}) {
		t.Fatalf("sheets=%v, want workbook order", sheets)
	}
}

func TestFilterBySearch(t *testing.T) {
	t.Parallel()

	names := []string{"Sales", "sales_Q1", "Costs"}

	// 大小写不敏感，保持原顺序
	got := FilterBySearch(names, "SALES")
	if !reflect.DeepEqual(got, []string{"Sales", "sales_Q1"}) {
		t.Fatalf("matches=%v", got)
	}

	// 空搜索词不自动匹配
	if got := FilterBySearch(names, ""); got != nil {
		t.Fatalf("empty term matches=%v, want none", got)
	}
}

func TestMergeSelectionsDeduplicates(t *testing.T) {
	t.Parallel()

	manual := map[string][]string{
		"f.xlsx": {"Sales", "Costs"},
	}
	auto := []SheetRef{
		{FileName: "f.xlsx", SheetName: "Sales"}, // 与手动选择重复
		{FileName: "g.xlsx", SheetName: "Sales"},
	}

	sel := MergeSelections(manual, auto)

	if got := sel["f.xlsx"]; !reflect.DeepEqual(got, []string{"Sales", "Costs"}) {
		t.Fatalf("f.xlsx selection=%v", got)
	}
	if got := sel["g.xlsx"]; !reflect.DeepEqual(got, []string{"Sales"}) {
		t.Fatalf("g.xlsx selection=%v", got)
	}

	// 顺序无关：交换两路来源结果一致
	sel2 := MergeSelections(map[string][]string{"g.xlsx": {"Sales"}}, []SheetRef{
		{FileName: "f.xlsx", SheetName: "Sales"},
		{FileName: "f.xlsx", SheetName: "Costs"},
	})
	if len(sel2["f.xlsx"]) != 2 || len(sel2["g.xlsx"]) != 1 {
		t.Fatalf("swapped merge=%v", sel2)
	}
}

func TestMergeSelectionsKeepsManualWithoutMatch(t *testing.T) {
	t.Parallel()

	manual := map[string][]string{"f.xlsx": {"Archive"}}
	sel := MergeSelections(manual, nil)

	if !sel.Contains("f.xlsx", "Archive") {
		t.Fatalf("manual pick lost: %v", sel)
	}
}
