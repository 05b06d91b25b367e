package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ConsoLog 一次合并运行的记录
type ConsoLog struct {
	ID           int64  `json:"id"`
	UploadID     string `json:"uploadId"`
	Mode         string `json:"mode"` // files / sheets
	FileCount    int    `json:"fileCount"`
	RowCount     int    `json:"rowCount"`
	WarningCount int    `json:"warningCount"`
	DurationMs   int64  `json:"durationMs"`
	CreatedAt    string `json:"createdAt"`
}

// InsertConsoLog 记录一次合并运行
func (s *Store) InsertConsoLog(l ConsoLog) error {
	_, err := s.db.Exec(`
		INSERT INTO conso_logs (upload_id, mode, file_count, row_count, warning_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.UploadID, l.Mode, l.FileCount, l.RowCount, l.WarningCount, l.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to insert conso log: %w", err)
	}
	return nil
}

// LastConsoLog 最近一次合并运行，没有记录时返回 (nil, nil)
func (s *Store) LastConsoLog() (*ConsoLog, error) {
	var l ConsoLog
	err := s.db.QueryRow(`
		SELECT id, upload_id, mode, file_count, row_count, warning_count, duration_ms, created_at
		FROM conso_logs ORDER BY id DESC LIMIT 1
	`).Scan(&l.ID, &l.UploadID, &l.Mode, &l.FileCount, &l.RowCount, &l.WarningCount, &l.DurationMs, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conso log: %w", err)
	}
	return &l, nil
}

// CountConsoLogs 合并运行总次数
func (s *Store) CountConsoLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM conso_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count conso logs: %w", err)
	}
	return n, nil
}
