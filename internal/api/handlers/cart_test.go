package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api/middleware"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

type fakeProductRepo struct {
	repository.ProductRepository
	products map[uuid.UUID]*domain.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

type cartTestEnv struct {
	router  *gin.Engine
	product *domain.Product
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	product := &domain.Product{
		ID:       uuid.New(),
		Name:     "Embroidered Kurta",
		Price:    500,
		IsActive: true,
	}
	repos := &repository.Repositories{
		Product: &fakeProductRepo{products: map[uuid.UUID]*domain.Product{product.ID: product}},
	}
	storage := cart.NewMemoryStorage()
	logger := zap.NewNop()

	router := gin.New()
	group := router.Group("/api")
	group.Use(middleware.SessionMiddleware())
	group.GET("/cart", HandleGetCart(storage, logger))
	group.POST("/cart/items", HandleAddCartItem(storage, repos, logger))
	group.PATCH("/cart/items", HandleUpdateCartItem(storage, logger))
	group.DELETE("/cart/items", HandleRemoveCartItem(storage, logger))
	group.DELETE("/cart", HandleClearCart(storage, logger))

	return &cartTestEnv{router: router, product: product}
}

type cartBody struct {
	SessionID  string      `json:"session_id"`
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func (e *cartTestEnv) do(t *testing.T, method, path, session string, payload interface{}) (*httptest.ResponseRecorder, cartBody) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed cartBody
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestCartEndpointsGenerateSessionWhenHeaderAbsent(t *testing.T) {
	env := newCartTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body.SessionID)
	assert.Equal(t, body.SessionID, w.Header().Get(middleware.SessionHeader))
	assert.Empty(t, body.Items)
}

func TestAddCartItemMergesAcrossRequests(t *testing.T) {
	env := newCartTestEnv(t)
	session := "sess-1"
	payload := gin.H{"product_id": env.product.ID.String(), "selected_size": "M"}

	w, _ := env.do(t, http.MethodPost, "/api/cart/items", session, payload)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := env.do(t, http.MethodPost, "/api/cart/items", session, payload)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, 1000.0, body.TotalPrice)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	env := newCartTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/cart/items", "sess-1",
		gin.H{"product_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	env := newCartTestEnv(t)
	session := "sess-1"
	id := env.product.ID.String()

	env.do(t, http.MethodPost, "/api/cart/items", session, gin.H{"product_id": id, "selected_size": "M"})
	env.do(t, http.MethodPost, "/api/cart/items", session, gin.H{"product_id": id, "selected_size": "L"})

	w, body := env.do(t, http.MethodPatch, "/api/cart/items", session,
		gin.H{"product_id": id, "quantity": 4, "selected_size": "M"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, body.TotalItems)

	w, body = env.do(t, http.MethodDelete, "/api/cart/items", session,
		gin.H{"product_id": id, "selected_size": "M"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "L", *body.Items[0].SelectedSize)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	env := newCartTestEnv(t)
	id := env.product.ID.String()

	env.do(t, http.MethodPost, "/api/cart/items", "sess-1", gin.H{"product_id": id})

	w, body := env.do(t, http.MethodGet, "/api/cart", "sess-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Items)
}

func TestClearCart(t *testing.T) {
	env := newCartTestEnv(t)
	session := "sess-1"
	id := env.product.ID.String()

	env.do(t, http.MethodPost, "/api/cart/items", session, gin.H{"product_id": id})
	w, body := env.do(t, http.MethodDelete, "/api/cart", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Items)
	assert.Equal(t, 0.0, body.TotalPrice)
}
