package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// DefaultSlotKey names the slot the cart is stored under.
const DefaultSlotKey = "cart_v1"

var _ ports.Persistence = (*Store)(nil)

// Store serializes the cart as a JSON array of {id, name, price, img} and
// keeps it in a single slot. Load and Save never surface errors; failures
// are logged and the in-memory cart stays authoritative.
type Store struct {
	slot   ports.Slot
	key    string
	logger *slog.Logger
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore wraps slot with the cart codec.
func NewStore(slot ports.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultSlotKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Key reports the slot key in use.
func (s *Store) Key() string { return s.key }

// Load returns the persisted cart, or an empty cart when the slot is absent
// or holds something that does not decode.
func (s *Store) Load(ctx context.Context) []domain.CartItem {
	if s.slot == nil {
		return []domain.CartItem{}
	}
	raw, err := s.slot.Read(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ports.ErrSlotNotFound) {
			s.logger.WarnContext(ctx, "failed to read cart slot, starting empty",
				slog.String("slot.key", s.key), slog.String("error", err.Error()))
		}
		return []domain.CartItem{}
	}
	items, err := Decode(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cart slot",
			slog.String("slot.key", s.key), slog.String("error", err.Error()))
		return []domain.CartItem{}
	}
	return items
}

// Save replaces the slot with items. Write failures are logged and dropped;
// the next mutation writes the latest state again.
func (s *Store) Save(ctx context.Context, items []domain.CartItem) {
	if s.slot == nil {
		return
	}
	raw, err := Encode(items)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode cart", slog.String("error", err.Error()))
		return
	}
	if err := s.slot.Write(ctx, s.key, raw); err != nil {
		s.logger.WarnContext(ctx, "failed to write cart slot",
			slog.String("slot.key", s.key), slog.Int("cart.size", len(items)), slog.String("error", err.Error()))
	}
}

// Reset deletes the slot so the next Load starts empty.
func (s *Store) Reset(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}
	return s.slot.Delete(ctx, s.key)
}

// Encode renders items as the slot's JSON array. A nil cart encodes as [].
func Encode(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	return json.Marshal(items)
}

// Decode parses a slot value. JSON null decodes to an empty cart; an entry
// that breaks the item invariants makes the whole value invalid.
func Decode(raw []byte) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("cart entry %d: %w", i, err)
		}
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}
