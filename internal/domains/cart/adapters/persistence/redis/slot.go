package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Slot = (*Slot)(nil)

// Slot keeps cart slots as plain Redis strings with no expiry.
type Slot struct {
	client goredis.UniversalClient
	prefix string
}

// NewSlot wires a Redis-backed slot. Keys are stored as prefix+key.
func NewSlot(client goredis.UniversalClient, prefix string) *Slot {
	return &Slot{client: client, prefix: prefix}
}

func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ports.ErrSlotNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *Slot) Write(ctx context.Context, key string, value []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Slot) Delete(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *Slot) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis cart slot not configured")
	}
	return nil
}
