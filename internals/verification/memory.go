package verification

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

type codeEntry struct {
	code      string
	issuedAt  time.Time
	expiresAt time.Time
	attempts  int
}

// MemoryStore keeps codes in process memory, guarded by a mutex. A janitor
// goroutine sweeps expired entries so abandoned registrations don't pile up.
type MemoryStore struct {
	opts Options

	mu       sync.Mutex
	codes    map[string]*codeEntry
	verified map[string]time.Time

	stopCh chan struct{}
}

func NewMemoryStore(opts Options) *MemoryStore {
	s := &MemoryStore{
		opts:     opts.withDefaults(),
		codes:    make(map[string]*codeEntry),
		verified: make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Stop terminates the janitor goroutine.
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}

func (s *MemoryStore) Issue(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.codes[email]; ok && now.Before(prev.issuedAt.Add(s.opts.ResendCooldown)) {
		return "", ErrResendCooldown
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	// Reissue replaces: the previous code for this email stops working.
	s.codes[email] = &codeEntry{
		code:      code,
		issuedAt:  now,
		expiresAt: now.Add(s.opts.CodeTTL),
		attempts:  s.opts.MaxAttempts,
	}
	return code, nil
}

func (s *MemoryStore) Verify(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[email]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.codes, email)
		return ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		entry.attempts--
		if entry.attempts <= 0 {
			delete(s.codes, email)
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	// Consumed: a second Verify with the same code must fail.
	delete(s.codes, email)
	s.verified[email] = time.Now().Add(s.opts.VerifiedTTL)
	return nil
}

func (s *MemoryStore) ConsumeVerified(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.verified[email]
	if !ok {
		return false, nil
	}
	delete(s.verified, email)
	return time.Now().Before(expiresAt), nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for email, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, email)
		}
	}
	for email, expiresAt := range s.verified {
		if now.After(expiresAt) {
			delete(s.verified, email)
		}
	}
}
