package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// Service is the cart store. It owns the in-memory cart, which stays
// authoritative for the session, and writes it through persistence after
// every mutation.
type Service struct {
	mu          sync.Mutex
	cart        *domain.Cart
	persistence ports.Persistence
	notifier    ports.Notifier
}

type Option func(*Service)

// WithNotifier sets the channel used for "added to cart" messages.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// NewService restores the cart from persistence and returns a ready store.
func NewService(ctx context.Context, persistence ports.Persistence, opts ...Option) *Service {
	s := &Service{
		persistence: persistence,
		notifier:    ports.NoopNotifier,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	var restored []domain.CartItem
	if persistence != nil {
		restored = persistence.Load(ctx)
	}
	s.cart = domain.NewCart(restored)
	return s
}

func (s *Service) Add(ctx context.Context, item domain.CartItem) []domain.CartItem {
	s.mu.Lock()
	s.cart.Append(item)
	items := s.sync(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, AddedMessage(item))
	return items
}

func (s *Service) Remove(ctx context.Context, index int) ([]domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.cart.RemoveAt(index)
	return s.sync(ctx), removed
}

func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.sync(ctx)
}

func (s *Service) Snapshot(_ context.Context) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Service) Total(_ context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// sync writes the current cart through persistence. Callers hold s.mu.
func (s *Service) sync(ctx context.Context) []domain.CartItem {
	items := s.cart.Items()
	if s.persistence != nil {
		s.persistence.Save(ctx, items)
	}
	return items
}

// AddedMessage is the notification text emitted when item joins the cart.
func AddedMessage(item domain.CartItem) string {
	return fmt.Sprintf("%s added to cart", item.Name)
}

var _ ports.Service = (*Service)(nil)
