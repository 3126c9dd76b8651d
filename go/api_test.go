package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carthttpmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/Apurer/go-gin-storefront/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	notifapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type testServer struct {
	router  *gin.Engine
	emitter *notifapp.Emitter
	store   *persistence.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	emitter := notifapp.NewEmitter(notifapp.WithAfterFunc(func(time.Duration, func()) {}))
	store := persistence.NewStore(cartmemory.NewSlot())
	catalog := catalogmemory.NewRepository()
	cart := cartapp.NewService(ctx, store, cartapp.WithNotifier(emitter))
	checkout, err := checkoutapp.NewService(
		checkoutapp.Config{Destination: "923703148097"},
		cart, checkoutworkflows.NewInlineCheckout(), emitter,
	)
	require.NoError(t, err)

	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CatalogAPI:       NewCatalogAPI(catalog),
		CartAPI:          NewCartAPI(cart, catalog),
		CheckoutAPI:      NewCheckoutAPI(checkout),
		NotificationsAPI: NewNotificationsAPI(emitter),
		ContactAPI:       NewContactAPI(Contact{SupportWhatsApp: "1234567", SupportPhone: "+923323486324"}),
	})
	return &testServer{router: router, emitter: emitter, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func productID(id int64) map[string]int64 {
	return map[string]int64{"productId": id}
}

func TestListProducts(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decode[[]Product](t, rec)
	require.Len(t, products, 20)
	assert.Equal(t, "Pencil Set", products[0].Name)
	assert.Equal(t, "Rs 50", products[0].PriceLabel)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []int64{1, 5, 1} {
		rec := srv.do(t, http.MethodPost, "/v1/cart/items", productID(id))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	cart := decode[carthttpmapper.Cart](t, srv.do(t, http.MethodGet, "/v1/cart", nil))
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, int64(120), cart.Total)
	assert.Equal(t, "Rs 120", cart.TotalLabel)
	assert.Equal(t, []string{"Pencil Set", "Eraser", "Pencil Set"}, []string{cart.Items[0].Name, cart.Items[1].Name, cart.Items[2].Name})

	rec := srv.do(t, http.MethodDelete, "/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[carthttpmapper.Cart](t, rec)
	require.Equal(t, 2, cart.Count)
	assert.Equal(t, "Pencil Set", cart.Items[1].Name)

	rec = srv.do(t, http.MethodDelete, "/v1/cart/items/9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[carthttpmapper.Cart](t, rec).Count)

	rec = srv.do(t, http.MethodDelete, "/v1/cart/items/-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[carthttpmapper.Cart](t, rec).Count)

	persisted := srv.store.Load(context.Background())
	assert.Len(t, persisted, 2)

	rec = srv.do(t, http.MethodDelete, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[carthttpmapper.Cart](t, rec).Count)
	assert.Empty(t, srv.store.Load(context.Background()))
}

func TestAddCartItem_Notifies(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/cart/items", productID(3))
	require.Equal(t, http.StatusOK, rec.Code)

	active := decode[[]notifdomain.Notification](t, srv.do(t, http.MethodGet, "/v1/notifications", nil))
	require.Len(t, active, 1)
	assert.Equal(t, "Ball Pen Pack added to cart", active[0].Message)
}

func TestAddCartItem_AdHocItem(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/cart/items", map[string]any{"id": 42, "name": "Gift Wrap", "price": 15})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gift Wrap", decode[carthttpmapper.Cart](t, rec).Items[0].Name)
}

func TestAddCartItem_Errors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/cart/items", productID(404))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	notFound := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeNotFound, notFound.Type)
	assert.Equal(t, "product with identifier '404' not found", notFound.Detail)

	rec = srv.do(t, http.MethodPost, "/v1/cart/items", map[string]any{"price": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)

	rec = srv.do(t, http.MethodPost, "/v1/cart/items", map[string]any{"name": "Refund", "price": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader("{"))
	raw := httptest.NewRecorder()
	srv.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	assert.Empty(t, decode[carthttpmapper.Cart](t, srv.do(t, http.MethodGet, "/v1/cart", nil)).Items)
}

func TestRemoveCartItem_BadIndex(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodDelete, "/v1/cart/items/first", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeBadRequest, problem.Type)
	assert.Equal(t, "index must be an integer", problem.Detail)
}

func TestConfirmOrder_EmptyCart(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPost, "/v1/checkout", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeEmptyCart, problem.Type)
	assert.Equal(t, "Cart is empty", problem.Detail)

	active := srv.emitter.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Cart is empty", active[0].Message)
}

func TestConfirmOrder_ReturnsLink(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodPost, "/v1/cart/items", productID(1))
	srv.do(t, http.MethodPost, "/v1/cart/items", productID(5))

	rec := srv.do(t, http.MethodPost, "/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	link := decode[checkoutdomain.OrderLink](t, rec)

	parsed, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/923703148097", parsed.Path)
	lines := strings.Split(parsed.Query().Get("text"), "\n")
	assert.Equal(t, "1) Pencil Set - Rs 50", lines[2])
	assert.Equal(t, "2) Eraser - Rs 20", lines[3])
	assert.Equal(t, 2, decode[carthttpmapper.Cart](t, srv.do(t, http.MethodGet, "/v1/cart", nil)).Count)
}

func TestGetContact(t *testing.T) {
	srv := newTestServer(t)
	contact := decode[Contact](t, srv.do(t, http.MethodGet, "/v1/contact", nil))
	assert.Equal(t, "https://wa.me/1234567", contact.SupportWhatsAppLink)
	assert.Equal(t, "+923323486324", contact.SupportPhone)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/healthz", nil).Code)
}

// closeNotifyingRecorder adds the CloseNotifier gin's streaming needs.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestStreamNotifications(t *testing.T) {
	srv := newTestServer(t)
	srv.emitter.Publish("Planner added to cart")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/v1/notifications/stream", nil).WithContext(ctx)
	rec := &closeNotifyingRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}

	srv.router.ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "event:notifications")
	assert.Contains(t, body, "Planner added to cart")
	assert.Equal(t, 0, srv.emitter.Subscribers(), "stream must unsubscribe when the client leaves")
}
