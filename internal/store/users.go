package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUserExists 注册时邮箱已被占用
var ErrUserExists = errors.New("用户已存在")

// ErrInvalidCredentials 邮箱或密码不匹配
var ErrInvalidCredentials = errors.New("邮箱或密码错误")

// RegisterUser 注册新用户，邮箱已存在时返回 ErrUserExists
func (s *Store) RegisterUser(email, password string) error {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}
	if exists > 0 {
		return ErrUserExists
	}

	if _, err := s.db.Exec(`INSERT INTO users (email, password) VALUES (?, ?)`, email, password); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// AuthenticateUser 校验邮箱 + 密码是否匹配
func (s *Store) AuthenticateUser(email, password string) (bool, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = ? AND password = ?`, email, password).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}
	return true, nil
}

// ChangePassword 修改密码，旧密码必须先验证通过
func (s *Store) ChangePassword(email, oldPassword, newPassword string) error {
	ok, err := s.AuthenticateUser(email, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	if _, err := s.db.Exec(`UPDATE users SET password = ? WHERE email = ?`, newPassword, email); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CountUsers 用户总数
func (s *Store) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
