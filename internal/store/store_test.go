package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "conso.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if err := st.RegisterUser("a@example.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 重复注册
	if err := st.RegisterUser("a@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate register err=%v, want ErrUserExists", err)
	}

	ok, err := st.AuthenticateUser("a@example.com", "secret")
	if err != nil || !ok {
		t.Fatalf("authenticate: ok=%v err=%v", ok, err)
	}

	ok, err = st.AuthenticateUser("a@example.com", "wrong")
	if err != nil || ok {
		t.Fatalf("wrong password: ok=%v err=%v", ok, err)
	}

	n, err := st.CountUsers()
	if err != nil || n != 1 {
		t.Fatalf("count users: n=%d err=%v", n, err)
	}
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if err := st.RegisterUser("a@example.com", "old"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 旧密码错误
	if err := st.ChangePassword("a@example.com", "bad", "new"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("change with bad old password err=%v", err)
	}

	if err := st.ChangePassword("a@example.com", "old", "new"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	ok, err := st.AuthenticateUser("a@example.com", "new")
	if err != nil || !ok {
		t.Fatalf("authenticate with new password: ok=%v err=%v", ok, err)
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if err := st.InsertFeedback("a@example.com", "很好用"); err != nil {
		t.Fatalf("insert feedback: %v", err)
	}
	if err := st.InsertFeedback("b@example.com", "导出很快"); err != nil {
		t.Fatalf("insert feedback: %v", err)
	}

	list, err := st.ListFeedback(10)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("feedback count=%d, want 2", len(list))
	}
	// 倒序
	if list[0].Email != "b@example.com" {
		t.Fatalf("latest feedback email=%s", list[0].Email)
	}
}

func TestConsoLog(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	last, err := st.LastConsoLog()
	if err != nil {
		t.Fatalf("last log on empty store: %v", err)
	}
	if last != nil {
		t.Fatalf("last=%+v, want nil", last)
	}

	if err := st.InsertConsoLog(ConsoLog{
		UploadID:     "u1",
		Mode:         "files",
		FileCount:    2,
		RowCount:     10,
		WarningCount: 1,
		DurationMs:   42,
	}); err != nil {
		t.Fatalf("insert log: %v", err)
	}

	last, err = st.LastConsoLog()
	if err != nil || last == nil {
		t.Fatalf("last log: %+v err=%v", last, err)
	}
	if last.Mode != "files" || last.RowCount != 10 {
		t.Fatalf("last=%+v", last)
	}

	n, err := st.CountConsoLogs()
	if err != nil || n != 1 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}
