package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api/middleware"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/checkout"
	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/internal/service"
	"github.com/nirajd1102/shopping-website/internal/whatsapp"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

type fakeCouponRepo struct {
	repository.CouponRepository
	coupons    map[string]*domain.Coupon
	usageBumps int
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if c, ok := f.coupons[code]; ok {
		return c, nil
	}
	return nil, &errors.ErrNotFound{Resource: "coupon", ID: code}
}

func (f *fakeCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	f.usageBumps++
	return nil
}

func newCheckoutRouter(t *testing.T, storage cart.Storage, couponSvc *service.CouponService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	links := whatsapp.NewLinkBuilder(config.WhatsAppConfig{Number: "919876543210"})
	submitter := checkout.NewSubmitter(links, nil, logger)

	router := gin.New()
	group := router.Group("/api")
	group.Use(middleware.SessionMiddleware())
	group.POST("/checkout", HandleCheckout(submitter, couponSvc, storage, logger))
	return router
}

func newTestCouponService(coupons ...*domain.Coupon) (*service.CouponService, *fakeCouponRepo) {
	repo := &fakeCouponRepo{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		repo.coupons[c.Code] = c
	}
	repos := &repository.Repositories{Coupon: repo}
	return service.NewCouponService(repos, zap.NewNop()), repo
}

func tenPercentCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:            uuid.New(),
		Code:          "FESTIVE10",
		DiscountType:  domain.DiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     time.Now().Add(-time.Hour),
		IsActive:      true,
	}
}

func postCheckout(t *testing.T, router *gin.Engine, session string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, session)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedCart(t *testing.T, storage cart.Storage, session string) {
	t.Helper()
	ctx := context.Background()
	store := cart.NewStore(ctx, storage, session, zap.NewNop())
	store.AddItem(ctx, cart.ProductInfo{ProductID: "p1", Name: "Embroidered Kurta", UnitPrice: 500}, nil, nil)
}

func TestCheckoutReturnsLinkAndClearsCart(t *testing.T) {
	storage := cart.NewMemoryStorage()
	router := newCheckoutRouter(t, storage, nil)
	seedCart(t, storage, "sess-1")

	w := postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "Priya Sharma",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success     bool   `json:"success"`
		WhatsAppURL string `json:"whatsapp_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.WhatsAppURL, "https://wa.me/919876543210")

	// Cart is spent after the handoff
	store := cart.NewStore(context.Background(), storage, "sess-1", zap.NewNop())
	assert.Empty(t, store.Lines())
}

func TestCheckoutRejectsInvalidCustomerWithFieldErrors(t *testing.T) {
	storage := cart.NewMemoryStorage()
	router := newCheckoutRouter(t, storage, nil)
	seedCart(t, storage, "sess-1")

	w := postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "P",
		"customer_phone":   "123",
		"customer_address": "nowhere",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "customer_name")
	assert.Contains(t, body.Fields, "customer_phone")
	assert.Contains(t, body.Fields, "customer_address")

	// A rejected checkout leaves the cart intact
	store := cart.NewStore(context.Background(), storage, "sess-1", zap.NewNop())
	assert.Len(t, store.Lines(), 1)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	storage := cart.NewMemoryStorage()
	router := newCheckoutRouter(t, storage, nil)

	w := postCheckout(t, router, "sess-empty", gin.H{
		"customer_name":    "Priya Sharma",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckoutWithCouponAppliesDiscountAndRedeemsOnce(t *testing.T) {
	storage := cart.NewMemoryStorage()
	couponSvc, repo := newTestCouponService(tenPercentCoupon())
	router := newCheckoutRouter(t, storage, couponSvc)
	seedCart(t, storage, "sess-1")

	w := postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "Priya Sharma",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
		"coupon_code":      "FESTIVE10",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success        bool    `json:"success"`
		CouponCode     string  `json:"coupon_code"`
		DiscountAmount float64 `json:"discount_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "FESTIVE10", body.CouponCode)
	assert.Equal(t, 50.0, body.DiscountAmount)
	assert.Equal(t, 1, repo.usageBumps)
}

func TestRejectedCheckoutDoesNotRedeemCoupon(t *testing.T) {
	storage := cart.NewMemoryStorage()
	couponSvc, repo := newTestCouponService(tenPercentCoupon())
	router := newCheckoutRouter(t, storage, couponSvc)
	seedCart(t, storage, "sess-1")

	// Invalid name; the coupon itself is fine
	w := postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "P",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
		"coupon_code":      "FESTIVE10",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, repo.usageBumps)

	// Retrying after the rejection still leaves a usable coupon
	w = postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "Priya Sharma",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
		"coupon_code":      "FESTIVE10",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.usageBumps)
}

func TestCheckoutWithInvalidCouponRejected(t *testing.T) {
	storage := cart.NewMemoryStorage()
	couponSvc, repo := newTestCouponService()
	router := newCheckoutRouter(t, storage, couponSvc)
	seedCart(t, storage, "sess-1")

	w := postCheckout(t, router, "sess-1", gin.H{
		"customer_name":    "Priya Sharma",
		"customer_phone":   "9876543210",
		"customer_address": "42 MG Road, Bengaluru",
		"coupon_code":      "NOPE",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, repo.usageBumps)
}
