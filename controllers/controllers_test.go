package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/payments"
	"github.com/Kariqs/justdrops-api/routes"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/Kariqs/justdrops-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	err error
}

func (g *stubGateway) Charge(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &payments.ChargeResult{PaymentID: "sq_" + req.SourceID, Status: "COMPLETED"}, nil
}

type testServer struct {
	router  *gin.Engine
	store   *store.MemoryStore
	svc     *services.Services
	gateway *stubGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{store: store.NewMemoryStore(), gateway: &stubGateway{}}
	ts.svc = services.New(services.Deps{
		Store:      ts.store,
		Gateway:    ts.gateway,
		Mailer:     utils.LogMailer{},
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
	ts.router = gin.New()
	routes.Setup(ts.router, controllers.NewHandler(ts.svc, ts.store, false), ts.svc.Auth)
	return ts
}

type request struct {
	method  string
	path    string
	body    any
	session string
	token   string
}

func (ts *testServer) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if r.session != "" {
		req.Header.Set(middlewares.SessionHeader, r.session)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[struct {
		Message string `json:"message"`
	}](t, rec).Message
}

func (ts *testServer) product(t *testing.T, slug string, price string) *models.Product {
	t.Helper()
	ctx := context.Background()
	category, err := ts.store.GetCategoryBySlug(ctx, "scopes")
	if errors.Is(err, store.ErrNotFound) {
		category, err = ts.svc.Catalog.CreateCategory(ctx, services.CategoryInput{Name: "Scopes", Slug: "scopes"})
	}
	require.NoError(t, err)
	product, err := ts.svc.Catalog.CreateProduct(ctx, services.ProductInput{
		Name:        slug,
		Slug:        slug,
		Description: "test product",
		Price:       decimal.RequireFromString(price),
		ImageUrl:    "https://example.com/p.jpg",
		CategoryID:  category.ID,
		Inventory:   10,
	})
	require.NoError(t, err)
	return product
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	_, err := ts.svc.Auth.EnsureAdmin(context.Background(), "admin", "admin@justdrops.xyz", "password123")
	require.NoError(t, err)
	rec := ts.do(t, request{method: http.MethodPost, path: "/api/login", body: gin.H{"username": "admin", "password": "password123"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](t, rec).Token
}

var shippingFields = gin.H{
	"fullName":    "Jane Doe",
	"email":       "jane@example.com",
	"address":     "1 Main St",
	"city":        "Phoenix",
	"state":       "AZ",
	"zipCode":     "85001",
	"totalAmount": "50.00",
}

type orderResponse struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

type cartResponse struct {
	Items    []models.CartLine `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func TestCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	p := ts.product(t, "scope", "25.00")

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/cart", session: "s1", body: gin.H{"productId": p.ID, "quantity": 2}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodGet, path: "/api/cart", session: "s1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("50").Equal(cart.Subtotal))

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/orders", session: "s1", body: shippingFields})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[orderResponse](t, rec)
	assert.Equal(t, models.OrderStatusPending, created.Order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, created.Order.PaymentStatus)

	rec = ts.do(t, request{method: http.MethodGet, path: "/api/cart", session: "s1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartResponse](t, rec).Items)

	rec = ts.do(t, request{method: http.MethodGet, path: fmt.Sprintf("/api/orders/%d", created.Order.ID)})
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[orderResponse](t, rec)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "scope", fetched.Items[0].ProductName)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestAddCartItem_IncrementReturnsOK(t *testing.T) {
	ts := newTestServer(t)
	p := ts.product(t, "scope", "10.00")

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/cart", session: "s1", body: gin.H{"productId": p.ID}})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = ts.do(t, request{method: http.MethodPost, path: "/api/cart", session: "s1", body: gin.H{"productId": p.ID, "quantity": 3}})
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := ts.store.ListCartItems(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestAddCartItem_Errors(t *testing.T) {
	ts := newTestServer(t)
	p := ts.product(t, "scope", "10.00")

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/cart", body: gin.H{"productId": p.ID}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Session ID required", message(t, rec))

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/cart", session: "s1", body: gin.H{"productId": 999}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/cart", session: "s1", body: gin.H{"productId": p.ID, "quantity": 0}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCartItem_RejectsQuantityBelowOne(t *testing.T) {
	ts := newTestServer(t)
	p := ts.product(t, "scope", "10.00")
	item, _, err := ts.store.AddCartItem(context.Background(), "s1", p.ID, 3)
	require.NoError(t, err)

	rec := ts.do(t, request{method: http.MethodPut, path: fmt.Sprintf("/api/cart/%d", item.ID), body: gin.H{"quantity": 0}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := ts.store.GetCartItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)

	rec = ts.do(t, request{method: http.MethodPut, path: fmt.Sprintf("/api/cart/%d", item.ID), body: gin.H{"quantity": 5}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/cart/%d", item.ID)})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, request{method: http.MethodDelete, path: fmt.Sprintf("/api/cart/%d", item.ID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/orders", session: "s1", body: shippingFields})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cart is empty", message(t, rec))

	orders, err := ts.store.ListOrders(context.Background(), store.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_IgnoresBodyUserID(t *testing.T) {
	ts := newTestServer(t)
	p := ts.product(t, "scope", "25.00")
	body := gin.H{"userId": 42}
	for k, v := range shippingFields {
		body[k] = v
	}

	_, _, err := ts.store.AddCartItem(context.Background(), "anon", p.ID, 1)
	require.NoError(t, err)
	rec := ts.do(t, request{method: http.MethodPost, path: "/api/orders", session: "anon", body: body})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	anonymous := decode[orderResponse](t, rec).Order
	stored, err := ts.store.GetOrder(context.Background(), anonymous.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UserID)

	token := ts.adminToken(t)
	admin, err := ts.store.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	_, _, err = ts.store.AddCartItem(context.Background(), "signed-in", p.ID, 1)
	require.NoError(t, err)
	rec = ts.do(t, request{method: http.MethodPost, path: "/api/orders", session: "signed-in", token: token, body: body})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	owned := decode[orderResponse](t, rec).Order
	stored, err = ts.store.GetOrder(context.Background(), owned.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, admin.ID, *stored.UserID)
}

func placeOrder(t *testing.T, ts *testServer) models.Order {
	t.Helper()
	p := ts.product(t, "scope", "25.00")
	_, _, err := ts.store.AddCartItem(context.Background(), "s1", p.ID, 2)
	require.NoError(t, err)
	rec := ts.do(t, request{method: http.MethodPost, path: "/api/orders", session: "s1", body: shippingFields})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[orderResponse](t, rec).Order
}

func TestPayOrder(t *testing.T) {
	ts := newTestServer(t)
	order := placeOrder(t, ts)
	path := fmt.Sprintf("/api/orders/%d/payment", order.ID)

	rec := ts.do(t, request{method: http.MethodPut, path: path, body: gin.H{"sourceId": "cnon:card"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	paid := decode[orderResponse](t, rec).Order
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, paid.Status)
	require.NotNil(t, paid.PaymentID)
	assert.Equal(t, "sq_cnon:card", *paid.PaymentID)

	rec = ts.do(t, request{method: http.MethodPut, path: path, body: gin.H{"sourceId": "cnon:card"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPayOrder_Errors(t *testing.T) {
	ts := newTestServer(t)
	order := placeOrder(t, ts)
	path := fmt.Sprintf("/api/orders/%d/payment", order.ID)

	rec := ts.do(t, request{method: http.MethodPut, path: "/api/orders/999/payment", body: gin.H{"sourceId": "tok"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, request{method: http.MethodPut, path: path, body: gin.H{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, request{method: http.MethodPut, path: path, body: gin.H{"sourceId": "tok", "amount": "1.00"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.gateway.err = &payments.DeclineError{Code: "CARD_DECLINED", Detail: "Card declined."}
	rec = ts.do(t, request{method: http.MethodPut, path: path, body: gin.H{"paymentId": "tok"}})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "Card declined.", message(t, rec))

	stored, err := ts.store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.PaymentID)
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/admin/orders", "/api/admin/stats", "/api/admin/contact-messages"} {
		rec := ts.do(t, request{method: http.MethodGet, path: path})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	token := ts.adminToken(t)
	rec := ts.do(t, request{method: http.MethodGet, path: "/api/admin/stats", token: token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_NonAdminRejected(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/users", body: gin.H{
		"username": "shopper", "password": "password123", "email": "shopper@example.com",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/users", body: gin.H{
		"username": "shopper", "password": "password123", "email": "other@example.com",
	}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/login", body: gin.H{"username": "shopper", "password": "password123"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.svc.Auth.EnsureAdmin(context.Background(), "admin", "admin@justdrops.xyz", "password123")
	require.NoError(t, err)

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/login", body: gin.H{"username": "admin", "password": "password123"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewares.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(session)
	status := httptest.NewRecorder()
	ts.router.ServeHTTP(status, req)
	require.Equal(t, http.StatusOK, status.Code)
	assert.True(t, decode[struct {
		Authenticated bool `json:"authenticated"`
	}](t, status).Authenticated)
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	ts.product(t, "scope", "10.00")
	category, err := ts.store.GetCategoryBySlug(context.Background(), "scopes")
	require.NoError(t, err)

	body := gin.H{
		"name":        "Another scope",
		"slug":        "scope",
		"description": "dup",
		"price":       "12.00",
		"imageUrl":    "https://example.com/x.jpg",
		"categoryId":  category.ID,
	}
	rec := ts.do(t, request{method: http.MethodPost, path: "/api/admin/products", token: token, body: body})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body["slug"] = "Not A Slug"
	rec = ts.do(t, request{method: http.MethodPost, path: "/api/admin/products", token: token, body: body})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body["slug"] = "another-scope"
	rec = ts.do(t, request{method: http.MethodPost, path: "/api/admin/products", token: token, body: body})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodGet, path: "/api/products/another-scope"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadProductImages_WithoutStorage(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	p := ts.product(t, "scope", "25.00")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("images", "front.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/products/%d/images/upload", p.ID), &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Image uploads are not configured", message(t, rec))
}

func TestUpdateInventory(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	p := ts.product(t, "scope", "10.00")
	path := fmt.Sprintf("/api/admin/products/%d/inventory", p.ID)

	rec := ts.do(t, request{method: http.MethodPut, path: path, token: token, body: gin.H{"inventory": 4, "expectedInventory": 7}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, request{method: http.MethodPut, path: path, token: token, body: gin.H{"inventory": 4, "expectedInventory": 10}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodPut, path: path, token: token, body: gin.H{"inventory": -1}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, request{method: http.MethodGet, path: path, token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[struct {
		Adjustments []models.InventoryAdjustment `json:"adjustments"`
	}](t, rec).Adjustments
	require.Len(t, history, 1)
	assert.Equal(t, 10, history[0].Previous)
	assert.Equal(t, 4, history[0].Current)
}

func TestAdminOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	order := placeOrder(t, ts)

	rec := ts.do(t, request{method: http.MethodPut, path: fmt.Sprintf("/api/admin/orders/%d/status", order.ID), token: token, body: gin.H{"status": "bogus"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/admin/orders/bulk-status", token: token, body: gin.H{
		"orderIds": []uint{order.ID, 999}, "status": models.OrderStatusProcessing,
	}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	stored, err := ts.store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)

	rec = ts.do(t, request{method: http.MethodPost, path: fmt.Sprintf("/api/admin/orders/%d/shipping-label", order.ID), token: token, body: gin.H{
		"service": "usps_priority", "packageSize": "small", "weight": "1.5",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stored, err = ts.store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	rec = ts.do(t, request{method: http.MethodGet, path: "/api/admin/orders?status=shipped", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Orders []models.Order `json:"orders"`
	}](t, rec).Orders, 1)
}

func TestNewsletter_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/newsletter", body: gin.H{"email": "a@example.com"}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = ts.do(t, request{method: http.MethodPost, path: "/api/newsletter", body: gin.H{"email": "A@example.com"}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, request{method: http.MethodPost, path: "/api/contact", body: gin.H{"name": "Jane", "email": "not-an-email", "message": "hi"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlog_DraftsHiddenFromPublic(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	rec := ts.do(t, request{method: http.MethodPost, path: "/api/admin/blog/posts", token: token, body: gin.H{
		"title": "Draft post", "content": "soon", "published": false,
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, request{method: http.MethodGet, path: "/api/blog/posts/draft-post"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, request{method: http.MethodGet, path: "/api/blog/posts/draft-post", token: token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

type downPinger struct{}

func (downPinger) PingContext(ctx context.Context) error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, request{method: http.MethodGet, path: "/api/healthz"})
	assert.Equal(t, http.StatusOK, rec.Code)

	h := controllers.NewHandler(ts.svc, downPinger{}, false)
	router := gin.New()
	router.GET("/healthz", h.HealthCheck)
	down := httptest.NewRecorder()
	router.ServeHTTP(down, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
}
