package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// responder maps storefront errors to RFC 7807 responses.
var responder = apierrors.NewResponder("",
	mapCartItemError,
	mapCheckoutError,
)

// respondBadRequest answers 400 for a request that could not be parsed.
func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

// respondServiceError runs err through the domain mappers.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapCartItemError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartdomain.ErrEmptyName):
		return apierrors.NewValidationProblem(map[string]string{"name": err.Error()}), true
	case errors.Is(err, cartdomain.ErrNegativePrice):
		return apierrors.NewValidationProblem(map[string]string{"price": err.Error()}), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, checkoutdomain.ErrEmptyCart) {
		return apierrors.NewEmptyCartProblem(checkoutdomain.EmptyCartMessage), true
	}
	return apierrors.ProblemDetail{}, false
}
