package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("cart item name must not be empty")
	ErrNegativePrice = errors.New("cart item price must not be negative")
)

// CartItem is one unit added to the cart. Identical products added twice
// produce two entries, so ID is not unique within a cart.
type CartItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Img   string `json:"img"`
}

// NewCartItem validates and constructs a CartItem.
func NewCartItem(id int64, name string, price int64, img string) (CartItem, error) {
	item := CartItem{ID: id, Name: strings.TrimSpace(name), Price: price, Img: img}
	if err := item.Validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// Validate enforces the item invariants.
func (i CartItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Cart is an ordered sequence of items; insertion order is display order.
// The zero value is an empty cart.
type Cart struct {
	items []CartItem
}

// NewCart builds a cart holding a copy of items.
func NewCart(items []CartItem) *Cart {
	return &Cart{items: cloneItems(items)}
}

// Append adds item to the end of the cart.
func (c *Cart) Append(item CartItem) {
	c.items = append(c.items, item)
}

// RemoveAt drops the item at index and shifts the rest down by one.
// Out-of-range indexes leave the cart untouched and report false.
func (c *Cart) RemoveAt(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	next := make([]CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:index]...)
	next = append(next, c.items[index+1:]...)
	c.items = next
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []CartItem {
	return cloneItems(c.items)
}

func (c *Cart) Total() int64 {
	return Total(c.items)
}

// Total sums the prices of items.
func Total(items []CartItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price
	}
	return sum
}

func cloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
