package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"conso/internal/model"
)

// ErrUnreadable 文件内容无法按声明类型解析（CSV 格式错误、工作簿损坏、sheet 不存在）
var ErrUnreadable = errors.New("unreadable file")

// Load 读取单个上传文件为内存表格
// kind 为 excel 时只读取 sheetName 指定的工作表，不会解析其余 sheet 的数据
func Load(file model.UploadedFile, kind model.FileKind, sheetName string) (*model.Table, error) {
	switch kind {
	case model.FileKindCSV:
		r, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		defer r.Close()
		return readCSV(r)
	case model.FileKindExcel:
		wb, err := OpenWorkbook(file)
		if err != nil {
			return nil, err
		}
		defer wb.Close()
		if sheetName == "" {
			// 未指定时取第一个 sheet（整文件模式）
			sheets := wb.GetSheetList()
			if len(sheets) == 0 {
				return nil, fmt.Errorf("%w: 工作簿没有任何 sheet", ErrUnreadable)
			}
			sheetName = sheets[0]
		}
		return SheetTable(wb, sheetName)
	default:
		return nil, fmt.Errorf("%w: 不支持的文件类型 %q", ErrUnreadable, string(kind))
	}
}

// OpenWorkbook 打开上传文件为 excelize 工作簿句柄
// 同一文件需要读多个 sheet 时复用句柄，避免重复解码
func OpenWorkbook(file model.UploadedFile) (*excelize.File, error) {
	r, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer r.Close()

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return wb, nil
}

// SheetTable 读取工作簿中指定 sheet 为表格
func SheetTable(wb *excelize.File, sheetName string) (*model.Table, error) {
	idx, err := wb.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q 不存在", ErrUnreadable, sheetName)
	}

	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return tableFromRows(rows), nil
}

// readCSV 解析整个 CSV 文件为一张表
// 列数不一致视为格式错误
func readCSV(r io.Reader) (*model.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return tableFromRows(records), nil
}

// tableFromRows 首行作为列名，其余行为数据
// 空列名按位置生成占位名；数据行比表头长时扩展占位列，短时补 nil
func tableFromRows(rows [][]string) *model.Table {
	t := model.NewTable()
	if len(rows) == 0 {
		return t
	}

	for i, h := range rows[0] {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		t.Columns = append(t.Columns, h)
	}

	for _, src := range rows[1:] {
		for len(t.Columns) < len(src) {
			t.Columns = append(t.Columns, fmt.Sprintf("Unnamed: %d", len(t.Columns)))
		}
		row := make([]any, len(t.Columns))
		for i, v := range src {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}

	// 补齐早先追加的行（表头被后续长行扩展过的情况）
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Columns) {
			t.Rows[i] = append(t.Rows[i], nil)
		}
	}

	return t
}
