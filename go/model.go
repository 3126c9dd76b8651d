package storefrontserver

// Product is the catalog entry rendered by the product grid.
type Product struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	PriceLabel string `json:"priceLabel"`
	Img        string `json:"img"`
}

// AddCartItemRequest adds either a catalog product (productId) or an ad hoc item.
type AddCartItemRequest struct {
	ProductId *int64 `json:"productId,omitempty"`
	Id        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Img       string `json:"img,omitempty"`
}

// Contact lists the general support channels. The order destination is
// configured separately and is not part of this payload.
type Contact struct {
	SupportWhatsApp     string `json:"supportWhatsApp,omitempty"`
	SupportWhatsAppLink string `json:"supportWhatsAppLink,omitempty"`
	SupportPhone        string `json:"supportPhone,omitempty"`
	SupportEmail        string `json:"supportEmail,omitempty"`
	InfoEmail           string `json:"infoEmail,omitempty"`
}
