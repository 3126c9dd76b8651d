package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	CatalogAPI       CatalogAPI
	CartAPI          CartAPI
	CheckoutAPI      CheckoutAPI
	NotificationsAPI NotificationsAPI
	ContactAPI       ContactAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose section was not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"ListProducts", http.MethodGet, "/v1/products", handleFunctions.CatalogAPI.ListProducts},
		{"GetCart", http.MethodGet, "/v1/cart", handleFunctions.CartAPI.GetCart},
		{"AddCartItem", http.MethodPost, "/v1/cart/items", handleFunctions.CartAPI.AddCartItem},
		{"RemoveCartItem", http.MethodDelete, "/v1/cart/items/:index", handleFunctions.CartAPI.RemoveCartItem},
		{"ClearCart", http.MethodDelete, "/v1/cart", handleFunctions.CartAPI.ClearCart},
		{"ConfirmOrder", http.MethodPost, "/v1/checkout", handleFunctions.CheckoutAPI.ConfirmOrder},
		{"ListNotifications", http.MethodGet, "/v1/notifications", handleFunctions.NotificationsAPI.ListNotifications},
		{"StreamNotifications", http.MethodGet, "/v1/notifications/stream", handleFunctions.NotificationsAPI.StreamNotifications},
		{"GetContact", http.MethodGet, "/v1/contact", handleFunctions.ContactAPI.GetContact},
	}
}

// Get /healthz
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
