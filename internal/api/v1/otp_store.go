package v1

import (
	"sync"
	"time"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// otpStore 按邮箱存放待验证的一次性验证码
type otpStore struct {
	mu    sync.Mutex
	items map[string]otpEntry
}

func newOTPStore() *otpStore {
	return &otpStore{
		items: make(map[string]otpEntry),
	}
}

func (s *otpStore) put(email, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	s.items[email] = otpEntry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}
}

// verify 校验并消费验证码，成功后立即失效
func (s *otpStore) verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[email]
	if !ok {
		return false
	}
	if time.Now().After(v.expiresAt) || v.code != code {
		return false
	}
	delete(s.items, email)
	return true
}

func (s *otpStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
