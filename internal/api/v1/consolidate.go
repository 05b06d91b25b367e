package v1

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"conso/internal/consolidator"
	"conso/internal/model"
	"conso/internal/store"
)

// 预览最多返回的行数，完整数据走导出
const previewRowLimit = 200

// ConsolidateFilesRequest 整文件模式合并请求
type ConsolidateFilesRequest struct {
	UploadID string         `json:"uploadId"`
	Kind     model.FileKind `json:"kind"`
}

// ConsolidateSheetsRequest sheet 模式合并请求
// Selection 为手动选择，Search 非空时服务端重算自动匹配并与手动选择合并
type ConsolidateSheetsRequest struct {
	UploadID  string              `json:"uploadId"`
	Selection map[string][]string `json:"selection"`
	Search    string              `json:"search"`
}

// PreviewResponse 合并结果预览
type PreviewResponse struct {
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"rowCount"`
	Warnings []string `json:"warnings"`
	Message  string   `json:"message,omitempty"`
}

func previewOf(result *model.ConsolidationResult) PreviewResponse {
	resp := PreviewResponse{
		Columns:  result.Table.Columns,
		Rows:     result.Table.Rows,
		RowCount: result.Table.RowCount(),
		Warnings: result.Warnings,
	}
	if resp.Columns == nil {
		resp.Columns = []string{}
	}
	if len(resp.Rows) > previewRowLimit {
		resp.Rows = resp.Rows[:previewRowLimit]
	}
	if result.Empty() {
		// 空结果是正常状态，不走错误分支
		resp.Rows = [][]any{}
		resp.Message = "没有可显示的数据"
	}
	return resp
}

func (h *Handler) recordRun(uploadID, mode string, fileCount int, result *model.ConsolidationResult, started time.Time) {
	err := h.store.InsertConsoLog(store.ConsoLog{
		UploadID:     uploadID,
		Mode:         mode,
		FileCount:    fileCount,
		RowCount:     result.Table.RowCount(),
		WarningCount: len(result.Warnings),
		DurationMs:   time.Since(started).Milliseconds(),
	})
	if err != nil {
		log.Printf("记录合并日志失败: %v", err)
	}
}

// ConsolidateFiles 整文件模式合并并返回预览
// POST /api/consolidate/files
func (h *Handler) ConsolidateFiles(c *gin.Context) {
	var req ConsolidateFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件类型必须是 csv 或 excel"})
		return
	}

	batch, ok := h.uploads.get(req.UploadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传批次不存在或已过期"})
		return
	}

	started := time.Now()
	files := batch.files()
	result := consolidator.ConsolidateFiles(files, req.Kind)
	h.recordRun(req.UploadID, "files", len(files), result, started)

	c.JSON(http.StatusOK, previewOf(result))
}

// ConsolidateSheets sheet 模式合并并返回预览
// POST /api/consolidate/sheets
func (h *Handler) ConsolidateSheets(c *gin.Context) {
	var req ConsolidateSheetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	batch, ok := h.uploads.get(req.UploadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传批次不存在或已过期"})
		return
	}

	started := time.Now()
	files := batch.files()
	selection := h.resolveSelection(files, req.Selection, req.Search)
	result := consolidator.ConsolidateSheets(files, selection)
	h.recordRun(req.UploadID, "sheets", len(selection), result, started)

	c.JSON(http.StatusOK, previewOf(result))
}
