package tabular

import "conso/internal/model"

// Tag 为表格补充溯源列
// 每行写入来源文件名；sheetName 非空时额外写入来源 sheet 名
// 直接在传入表上操作，调用方保证该表为本次加载独占
func Tag(t *model.Table, fileName, sheetName string) *model.Table {
	t.AddConstColumn(model.ProvenanceFilename, fileName)
	if sheetName != "" {
		t.AddConstColumn(model.ProvenanceSheetName, sheetName)
	}
	return t
}
