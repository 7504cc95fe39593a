// Package memory keeps verification codes in process memory. Codes are lost
// on restart and are not shared between replicas.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
)

type Store struct {
	mu    sync.Mutex
	codes map[string]domain.VerificationCode // by phone
}

var _ store.VerificationCodes = (*Store)(nil)

func New() *Store {
	return &Store{codes: make(map[string]domain.VerificationCode)}
}

func (s *Store) ReplaceVerificationCode(_ context.Context, c domain.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[c.Phone] = c
	return nil
}

func (s *Store) ConsumeVerificationCode(_ context.Context, phone, codeHash string) (domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[phone]
	if !ok || c.CodeHash != codeHash {
		return domain.VerificationCode{}, store.ErrNotFound
	}
	delete(s.codes, phone)
	return c, nil
}

func (s *Store) DeleteExpiredVerificationCodes(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for phone, c := range s.codes {
		if c.Expired(now) {
			delete(s.codes, phone)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored codes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
