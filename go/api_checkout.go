package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutports "github.com/Apurer/go-gin-storefront/internal/domains/checkout/ports"
)

// CheckoutAPI hands the cart off to the chat ordering channel.
type CheckoutAPI struct {
	service checkoutports.Service
}

func NewCheckoutAPI(service checkoutports.Service) CheckoutAPI {
	return CheckoutAPI{service: service}
}

// Post /v1/checkout
// Renders the order message and returns the deep link to open in a new browsing context
func (api *CheckoutAPI) ConfirmOrder(c *gin.Context) {
	link, err := api.service.Confirm(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
