package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conso/internal/consolidator"
	"conso/internal/exporter"
	"conso/internal/model"
)

// ExportRequest 导出请求：重跑一次合并并生成下载令牌
type ExportRequest struct {
	UploadID  string              `json:"uploadId"`
	Mode      string              `json:"mode"` // files / sheets
	Kind      model.FileKind      `json:"kind"` // files 模式使用
	Selection map[string][]string `json:"selection"`
	Search    string              `json:"search"`
	Filename  string              `json:"filename"` // 不含扩展名，默认取配置
}

// sanitizeExportName 过滤用户输入的文件名中的路径与分隔符
func sanitizeExportName(name, fallback string) string {
	name = strings.TrimSpace(name)
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, ".xlsx")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}

// Export 合并并导出 xlsx，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	batch, ok := h.uploads.get(req.UploadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "上传批次不存在或已过期"})
		return
	}

	files := batch.files()
	var result *model.ConsolidationResult
	switch req.Mode {
	case "files":
		if !req.Kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "文件类型必须是 csv 或 excel"})
			return
		}
		result = consolidator.ConsolidateFiles(files, req.Kind)
	case "sheets":
		selection := h.resolveSelection(files, req.Selection, req.Search)
		result = consolidator.ConsolidateSheets(files, selection)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode 必须是 files 或 sheets"})
		return
	}

	data, err := exporter.ExportBytes(result.Table)
	if err != nil {
		// 导出失败只影响本次下载，不影响预览
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	exportPath := filepath.Join(h.dataDir, "exports",
		fmt.Sprintf("conso_export_%d.xlsx", time.Now().UnixNano()))
	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出目录失败"})
		return
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
		return
	}

	name := sanitizeExportName(req.Filename, h.cfg.Export.DefaultName)
	token := h.downloads.put(exportPath, name+".xlsx", 10*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
		"rowCount":    result.Table.RowCount(),
		"warnings":    result.Warnings,
	})
}

// DownloadExport 下载导出的 xlsx 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
