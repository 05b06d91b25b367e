package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	UserCount    int    `json:"userCount"`    // 注册用户数
	RunCount     int    `json:"runCount"`     // 历史合并运行次数
	LastRunTime  string `json:"lastRunTime"`  // 最近一次合并时间
	LastRunRows  int    `json:"lastRunRows"`  // 最近一次合并行数
	MailerReady  bool   `json:"mailerReady"`  // SMTP 是否已配置
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		MailerReady: h.mailer.Configured(),
	}

	if n, err := h.store.CountUsers(); err == nil {
		resp.UserCount = n
	}
	if n, err := h.store.CountConsoLogs(); err == nil {
		resp.RunCount = n
	}
	if last, err := h.store.LastConsoLog(); err == nil && last != nil {
		resp.LastRunTime = last.CreatedAt
		resp.LastRunRows = last.RowCount
	}

	c.JSON(http.StatusOK, resp)
}
