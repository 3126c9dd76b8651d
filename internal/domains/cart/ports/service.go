package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Service exposes the cart store operations to adapters. Every operation is
// total: none of them fail.
type Service interface {
	// Add appends item and returns the cart after the mutation.
	Add(ctx context.Context, item domain.CartItem) []domain.CartItem
	// Remove drops the item at index and reports whether anything was removed.
	Remove(ctx context.Context, index int) ([]domain.CartItem, bool)
	Clear(ctx context.Context)
	Snapshot(ctx context.Context) []domain.CartItem
	// Total is the sum of prices currently in the cart.
	Total(ctx context.Context) int64
}
