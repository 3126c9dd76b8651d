package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Persistence loads and saves the cart on a best-effort basis. Neither call
// reports failures to the caller.
type Persistence interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem)
}
