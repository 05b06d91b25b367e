package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"conso/internal/model"
	"conso/internal/tabular"
)

// FileSheets 单个文件的 sheet 列表与搜索命中
type FileSheets struct {
	Name    string   `json:"name"`
	Sheets  []string `json:"sheets"`
	Matches []string `json:"matches"` // 被搜索词命中的 sheet（保持原顺序）
	Error   string   `json:"error,omitempty"`
}

// ListUploadSheets 列出上传批次内每个文件的 sheet 名
// 带 search 参数时同时返回大小写不敏感的子串匹配结果
// GET /api/uploads/:id/sheets?search=
func (h *Handler) ListUploadSheets(c *gin.Context) {
	batch, ok := h.uploads.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传批次不存在或已过期"})
		return
	}

	search := c.Query("search")

	files := make([]FileSheets, 0)
	autoMatched := make([]tabular.SheetRef, 0)

	for _, file := range batch.files() {
		entry := FileSheets{Name: file.Name()}

		sheets, err := tabular.ListSheets(file)
		if err != nil {
			// 非法工作簿不阻塞其他文件的列表
			entry.Error = fmt.Sprintf("读取工作簿失败: %v", err)
			entry.Sheets = []string{}
			entry.Matches = []string{}
			files = append(files, entry)
			continue
		}

		entry.Sheets = sheets
		entry.Matches = tabular.FilterBySearch(sheets, search)
		if entry.Matches == nil {
			entry.Matches = []string{}
		}
		for _, sheetName := range entry.Matches {
			autoMatched = append(autoMatched, tabular.SheetRef{
				FileName:  file.Name(),
				SheetName: sheetName,
			})
		}
		files = append(files, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadId":    c.Param("id"),
		"search":      search,
		"files":       files,
		"autoMatched": autoMatched,
	})
}

// resolveSelection 重算搜索匹配并与手动选择合并
func (h *Handler) resolveSelection(files []model.UploadedFile, manual map[string][]string, search string) model.SheetSelection {
	autoMatched := make([]tabular.SheetRef, 0)
	if search != "" {
		for _, file := range files {
			sheets, err := tabular.ListSheets(file)
			if err != nil {
				// 合并阶段会再次报告该文件的错误
				continue
			}
			for _, sheetName := range tabular.FilterBySearch(sheets, search) {
				autoMatched = append(autoMatched, tabular.SheetRef{
					FileName:  file.Name(),
					SheetName: sheetName,
				})
			}
		}
	}
	return tabular.MergeSelections(manual, autoMatched)
}
