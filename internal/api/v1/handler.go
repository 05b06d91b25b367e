package v1

import (
	"github.com/gin-gonic/gin"

	"conso/internal/config"
	"conso/internal/mailer"
	"conso/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store   *store.Store
	mailer  *mailer.Mailer
	cfg     *config.AppConfig
	dataDir string

	uploads   *uploadStore
	downloads *downloadStore
	otps      *otpStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.Store, m *mailer.Mailer, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:     st,
		mailer:    m,
		cfg:       cfg,
		dataDir:   dataDir,
		uploads:   newUploadStore(),
		downloads: newDownloadStore(),
		otps:      newOTPStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 用户认证
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/password", h.ChangePassword)
	router.POST("/auth/otp/send", h.SendOTP)
	router.POST("/auth/otp/verify", h.VerifyOTP)

	// 文件上传与 sheet 列表
	router.POST("/uploads", h.Upload)
	router.GET("/uploads/:id/sheets", h.ListUploadSheets)

	// 数据合并
	router.POST("/consolidate/files", h.ConsolidateFiles)
	router.POST("/consolidate/sheets", h.ConsolidateSheets)

	// 导出下载
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 反馈
	router.POST("/feedback", h.SubmitFeedback)

	// 系统状态
	router.GET("/status", h.GetStatus)
}
