package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"conso/internal/model"
)

// 输出工作簿中唯一 sheet 的名字
const OutputSheetName = "Sheet1"

// Export 把合并结果表写成单 sheet 工作簿
// 首行为列名（保持表内顺序），不写行号列；空表输出只有表头（或完全为空）的 sheet
func Export(t *model.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if len(t.Columns) > 0 {
		header := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(OutputSheetName, "A1", &header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入表头失败: %w", err)
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("计算单元格坐标失败: %w", err)
		}
		// SetSheetRow 需要独立的切片副本，nil 单元格保持空白
		values := make([]any, len(t.Columns))
		copy(values, row)
		if err := f.SetSheetRow(OutputSheetName, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入第 %d 行失败: %w", i+1, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// ExportBytes 导出为 xlsx 字节流，供下载接口直接回写
func ExportBytes(t *model.Table) ([]byte, error) {
	f, err := Export(t)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("序列化工作簿失败: %w", err)
	}
	return buf.Bytes(), nil
}
