package v1

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conso/internal/mailer"
	"conso/internal/store"
)

const otpTTL = 5 * time.Minute

// CredentialsRequest 注册 / 登录请求
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// OTPSendRequest 发送验证码请求
type OTPSendRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest 校验验证码请求
type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func normalizeEmail(email string) (string, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", false
	}
	return email, true
}

// Register 注册新用户
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "密码不能为空"})
		return
	}

	if err := h.store.RegisterUser(email, req.Password); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "用户已存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "注册成功"})
}

// Login 登录校验
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}

	authed, err := h.store.AuthenticateUser(email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录校验失败"})
		return
	}
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功"})
}

// ChangePassword 修改密码
// POST /api/auth/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}
	if req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "新密码不能为空"})
		return
	}

	if err := h.store.ChangePassword(email, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或旧密码错误"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "修改密码失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "密码修改成功"})
}

// SendOTP 发送一次性验证码邮件
// POST /api/auth/otp/send
func (h *Handler) SendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}

	code := mailer.NewOTPCode()
	if err := h.mailer.SendOTP(email, code); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SMTP 未配置，无法发送验证码"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "发送验证码失败: " + err.Error()})
		return
	}

	h.otps.put(email, code, otpTTL)
	c.JSON(http.StatusOK, gin.H{"message": "验证码已发送"})
}

// VerifyOTP 校验验证码（一次性，校验成功即失效）
// POST /api/auth/otp/verify
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的邮箱地址"})
		return
	}

	if !h.otps.verify(email, strings.TrimSpace(req.Code)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "验证码错误或已过期"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "验证通过"})
}
