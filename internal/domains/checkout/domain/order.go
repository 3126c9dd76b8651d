package domain

import cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"

// OrderRequest carries everything needed to render a checkout link. Items is
// a snapshot taken when checkout was confirmed.
type OrderRequest struct {
	Reference   string
	BaseURL     string
	Destination string
	Items       []cartdomain.CartItem
}

// OrderLink is the rendered checkout hand-off.
type OrderLink struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
	Message   string `json:"message"`
	ItemCount int    `json:"itemCount"`
	Total     int64  `json:"total"`
}

// Render formats the request into a link.
func (r OrderRequest) Render() (*OrderLink, error) {
	link, err := BuildCheckoutLink(r.BaseURL, r.Destination, r.Items)
	if err != nil {
		return nil, err
	}
	return &OrderLink{
		Reference: r.Reference,
		URL:       link,
		Message:   FormatOrderMessage(r.Items),
		ItemCount: len(r.Items),
		Total:     cartdomain.Total(r.Items),
	}, nil
}
