package mapper

import (
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
)

// Item is the transport shape of a cart entry; it matches the persisted form.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Img   string `json:"img"`
}

// Cart is the transport view rendered by the cart sidebar.
type Cart struct {
	Items      []Item `json:"items"`
	Count      int    `json:"count"`
	Total      int64  `json:"total"`
	TotalLabel string `json:"totalLabel"`
}

// ToDomainItem validates a transport item and converts it.
func ToDomainItem(item Item) (cartdomain.CartItem, error) {
	return cartdomain.NewCartItem(item.ID, item.Name, item.Price, item.Img)
}

func FromDomainItem(item cartdomain.CartItem) Item {
	return Item{ID: item.ID, Name: item.Name, Price: item.Price, Img: item.Img}
}

// FromSnapshot builds the cart view from a snapshot.
func FromSnapshot(items []cartdomain.CartItem) Cart {
	view := Cart{Items: make([]Item, 0, len(items)), Count: len(items)}
	for _, item := range items {
		view.Items = append(view.Items, FromDomainItem(item))
	}
	view.Total = cartdomain.Total(items)
	view.TotalLabel = checkoutdomain.FormatPrice(view.Total)
	return view
}
