package storefrontserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// CartAPI exposes the cart store.
type CartAPI struct {
	service cartports.Service
	catalog catalogports.Repository
}

func NewCartAPI(service cartports.Service, catalog catalogports.Repository) CartAPI {
	return CartAPI{service: service, catalog: catalog}
}

// Get /v1/cart
// Returns the cart in insertion order with its total
func (api *CartAPI) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, carthttpmapper.FromSnapshot(api.service.Snapshot(c.Request.Context())))
}

// Post /v1/cart/items
// Appends a catalog product or an ad hoc item to the cart
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload AddCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := api.resolveItem(c.Request.Context(), payload)
	if errors.Is(err, catalogports.ErrNotFound) {
		responder.NotFound(c, "product", *payload.ProductId)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := api.service.Add(c.Request.Context(), item)
	c.JSON(http.StatusOK, carthttpmapper.FromSnapshot(items))
}

func (api *CartAPI) resolveItem(ctx context.Context, payload AddCartItemRequest) (cartdomain.CartItem, error) {
	if payload.ProductId != nil {
		if api.catalog == nil {
			return cartdomain.CartItem{}, errors.New("catalog not configured")
		}
		product, err := api.catalog.GetByID(ctx, *payload.ProductId)
		if err != nil {
			return cartdomain.CartItem{}, err
		}
		return product.ToCartItem(), nil
	}
	return carthttpmapper.ToDomainItem(carthttpmapper.Item{
		ID:    payload.Id,
		Name:  payload.Name,
		Price: payload.Price,
		Img:   payload.Img,
	})
}

// Delete /v1/cart/items/:index
// Removes the item at a position; out-of-range positions leave the cart unchanged
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondBadRequest(c, errors.New("index must be an integer"))
		return
	}
	items, _ := api.service.Remove(c.Request.Context(), index)
	c.JSON(http.StatusOK, carthttpmapper.FromSnapshot(items))
}

// Delete /v1/cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	api.service.Clear(c.Request.Context())
	c.JSON(http.StatusOK, carthttpmapper.FromSnapshot(nil))
}
