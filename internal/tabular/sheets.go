package tabular

import (
	"strings"

	"conso/internal/model"
)

// SheetRef 一个 (文件, sheet) 对，搜索自动匹配的结果单元
type SheetRef struct {
	FileName  string `json:"fileName"`
	SheetName string `json:"sheetName"`
}

// ListSheets 列出工作簿内全部 sheet 名，保持工作簿内顺序
func ListSheets(file model.UploadedFile) ([]string, error) {
	wb, err := OpenWorkbook(file)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.GetSheetList(), nil
}

// FilterBySearch 按搜索词过滤 sheet 名
// 大小写不敏感的子串匹配，保持原顺序；空搜索词不自动匹配任何 sheet
func FilterBySearch(sheetNames []string, term string) []string {
	if term == "" {
		return nil
	}
	lowered := strings.ToLower(term)
	var matched []string
	for _, name := range sheetNames {
		if strings.Contains(strings.ToLower(name), lowered) {
			matched = append(matched, name)
		}
	}
	return matched
}

// MergeSelections 合并手动选择与搜索自动匹配
// 两路信号取并集并按 (文件, sheet) 去重，手动选择即使未被搜索命中也会保留
func MergeSelections(manual map[string][]string, autoMatched []SheetRef) model.SheetSelection {
	selection := model.SheetSelection{}
	for fileName, sheets := range manual {
		for _, sheetName := range sheets {
			selection.Add(fileName, sheetName)
		}
	}
	for _, ref := range autoMatched {
		selection.Add(ref.FileName, ref.SheetName)
	}
	return selection
}
