package domain

import (
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Product is an entry of the static catalog.
type Product struct {
	ID    int64
	Name  string
	Price int64
	Img   string
}

// ToCartItem captures the product as a cart entry at the time of adding.
func (p Product) ToCartItem() cartdomain.CartItem {
	return cartdomain.CartItem{ID: p.ID, Name: p.Name, Price: p.Price, Img: p.Img}
}
