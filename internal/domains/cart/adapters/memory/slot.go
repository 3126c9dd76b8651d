package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Slot = (*Slot)(nil)

// Slot is an in-memory slot backend for development and tests. Contents do
// not survive a restart.
type Slot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewSlot() *Slot {
	return &Slot{values: map[string][]byte{}}
}

func (s *Slot) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ports.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Slot) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Slot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
