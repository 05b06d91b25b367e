package mailer

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/wneessen/go-mail"

	"conso/internal/config"
)

// ErrNotConfigured SMTP 凭据未配置，无法发信
var ErrNotConfigured = errors.New("SMTP 未配置")

// Mailer OTP 邮件发送器，基于隐式 TLS 的 SMTP（默认 465 端口）
type Mailer struct {
	cfg config.SMTPConfig
}

// New 创建发送器
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured 是否具备发信所需的最小配置
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

// SendOTP 发送一次性验证码邮件
func (m *Mailer) SendOTP(email, code string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from()); err != nil {
		return fmt.Errorf("无效的发件地址: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("无效的收件地址: %w", err)
	}
	msg.Subject("Your OTP Code")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your OTP code is %s", code))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("创建 SMTP 客户端失败: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

// NewOTPCode 生成 6 位数字验证码
func NewOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand 失败在本地环境几乎不可能发生
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
