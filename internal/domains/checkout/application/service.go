package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/checkout/ports"
)

// ErrInvalidConfig signals the checkout destination or base URL is unusable.
var ErrInvalidConfig = errors.New("invalid checkout configuration")

// Config holds the order channel settings.
type Config struct {
	BaseURL     string
	Destination string
}

// Service turns the current cart into an outbound order link.
type Service struct {
	cfg      Config
	cart     ports.CartReader
	links    ports.LinkBuilder
	notifier ports.Notifier
	newRef   func() string
}

type Option func(*Service)

// WithReferenceGenerator overrides how order references are minted.
func WithReferenceGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRef = fn
		}
	}
}

// NewService validates cfg and wires collaborators.
func NewService(cfg Config, cart ports.CartReader, links ports.LinkBuilder, notifier ports.Notifier, opts ...Option) (*Service, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if err := domain.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := domain.ValidateDestination(cfg.Destination); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cart == nil || links == nil {
		return nil, errors.New("checkout requires a cart reader and a link builder")
	}
	s := &Service{cfg: cfg, cart: cart, links: links, notifier: notifier, newRef: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Confirm snapshots the cart and renders the checkout link. An empty cart is
// refused with a "Cart is empty" notification and ErrEmptyCart; no link is
// produced. The cart is left as is after a successful checkout.
func (s *Service) Confirm(ctx context.Context) (*domain.OrderLink, error) {
	items := s.cart.Snapshot(ctx)
	if len(items) == 0 {
		if s.notifier != nil {
			s.notifier.Notify(ctx, domain.EmptyCartMessage)
		}
		return nil, domain.ErrEmptyCart
	}
	return s.links.BuildLink(ctx, domain.OrderRequest{
		Reference:   s.newRef(),
		BaseURL:     s.cfg.BaseURL,
		Destination: s.cfg.Destination,
		Items:       items,
	})
}

var _ ports.Service = (*Service)(nil)
