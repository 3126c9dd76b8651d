package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCartEmpty = errors.New("cart is empty")

func respondWith(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/checkout", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/checkout", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewResponder("https://storefront.example",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errCartEmpty) {
				return NewEmptyCartProblem("Cart is empty"), true
			}
			return ProblemDetail{}, false
		},
	)

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("confirm: %w", errCartEmpty))
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://storefront.example"+TypeEmptyCart, problem.Type)
	assert.Equal(t, "Cart is empty", problem.Detail)
	assert.Equal(t, "/v1/checkout", problem.Instance)
}

func TestResponder_FallsBackToInternal(t *testing.T) {
	responder := NewResponder("")

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("slot unavailable"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.Equal(t, "slot unavailable", problem.Detail)
}

func TestResponder_PassesThroughProblemDetail(t *testing.T) {
	responder := NewResponder("")

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("confirm: %w", NewEmptyCartProblem("Cart is empty")))
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, TypeEmptyCart, problem.Type)
}

func TestResponder_NotFound(t *testing.T) {
	responder := NewResponder("")

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.NotFound(c, "product", 404)
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "product with identifier '404' not found", problem.Detail)
	assert.Equal(t, "product", problem.Extensions["resourceType"])
	assert.EqualValues(t, 404, problem.Extensions["identifier"])
}

func TestResponder_BadRequest(t *testing.T) {
	responder := NewResponder("")

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.BadRequest(c, "index must be an integer")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, TypeBadRequest, problem.Type)
	assert.Equal(t, "index must be an integer", problem.Detail)
}
