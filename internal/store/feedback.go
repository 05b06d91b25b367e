package store

import "fmt"

// Feedback 一条用户反馈
type Feedback struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"createdAt"`
}

// InsertFeedback 保存一条反馈
func (s *Store) InsertFeedback(email, feedback string) error {
	if _, err := s.db.Exec(`INSERT INTO feedback (email, feedback) VALUES (?, ?)`, email, feedback); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// ListFeedback 按提交时间倒序列出反馈
func (s *Store) ListFeedback(limit int) ([]Feedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, email, feedback, created_at FROM feedback
		ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.Email, &f.Feedback, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
