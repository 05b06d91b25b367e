// Package consolidator 把多个上传文件（或文件内选定的 sheet）合并为一张表
//
// 单个文件/sheet 的失败只记录告警并跳过，批次永远继续；
// 全部失败时产出空表，属于"没有可显示的数据"的正常结果。
package consolidator

import (
	"fmt"

	"conso/internal/model"
	"conso/internal/tabular"
)

// ConsolidateFiles 整文件模式合并
// 逐个文件执行 加载 -> 打溯源标 -> 并入输出表
func ConsolidateFiles(files []model.UploadedFile, kind model.FileKind) *model.ConsolidationResult {
	result := &model.ConsolidationResult{
		Table:    model.NewTable(),
		Warnings: []string{},
	}

	for _, file := range files {
		t, err := tabular.Load(file, kind, "")
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("处理文件 %s 失败: %v", file.Name(), err))
			continue
		}
		tabular.Tag(t, file.Name(), "")
		result.Table.Append(t)
	}

	return result
}

// ConsolidateSheets 按 sheet 模式合并
// 只处理 selection 中出现的文件；每个文件的工作簿打开一次，逐个读取选中 sheet
func ConsolidateSheets(files []model.UploadedFile, selection model.SheetSelection) *model.ConsolidationResult {
	result := &model.ConsolidationResult{
		Table:    model.NewTable(),
		Warnings: []string{},
	}

	for _, file := range files {
		sheets := selection[file.Name()]
		if len(sheets) == 0 {
			continue
		}

		wb, err := tabular.OpenWorkbook(file)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("处理文件 %s 失败: %v", file.Name(), err))
			continue
		}

		for _, sheetName := range sheets {
			t, err := tabular.SheetTable(wb, sheetName)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("处理文件 %s 的 sheet %s 失败: %v", file.Name(), sheetName, err))
				continue
			}
			tabular.Tag(t, file.Name(), sheetName)
			result.Table.Append(t)
		}

		_ = wb.Close()
	}

	return result
}
