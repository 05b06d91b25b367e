package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// FeedbackRequest 反馈提交请求
type FeedbackRequest struct {
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
}

// SubmitFeedback 保存用户反馈
// POST /api/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}
	if strings.TrimSpace(req.Feedback) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "反馈内容不能为空"})
		return
	}

	if err := h.store.InsertFeedback(email, req.Feedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存反馈失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "反馈提交成功"})
}
