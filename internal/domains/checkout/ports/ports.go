package ports

import (
	"context"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
)

// CartReader exposes the read-only cart snapshot checkout works from.
type CartReader interface {
	Snapshot(ctx context.Context) []cartdomain.CartItem
}

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// LinkBuilder renders an order request into a checkout link, either inline or
// through a durable workflow.
type LinkBuilder interface {
	BuildLink(ctx context.Context, request domain.OrderRequest) (*domain.OrderLink, error)
}

// Service exposes checkout to adapters.
type Service interface {
	Confirm(ctx context.Context) (*domain.OrderLink, error)
}
