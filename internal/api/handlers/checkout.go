package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api/middleware"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/checkout"
	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/internal/service"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

// CheckoutRequest carries the customer details for a cart checkout. The items
// come from the session cart, never the request body.
type CheckoutRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerAddress string  `json:"customer_address" binding:"required"`
	CouponCode      *string `json:"coupon_code"`
}

// BuyNowCheckoutRequest is the single-product checkout payload
type BuyNowCheckoutRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerAddress string  `json:"customer_address" binding:"required"`
	ProductID       string  `json:"product_id" binding:"required"`
	SelectedSize    *string `json:"selected_size"`
	SelectedColor   *string `json:"selected_color"`
	Quantity        int     `json:"quantity"`
}

// ValidateCouponRequest checks a coupon code against a cart total
type ValidateCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	CartTotal float64 `json:"cart_total" binding:"min=0"`
}

// HandleCheckout validates the session cart and customer details, builds the
// WhatsApp handoff link and clears the cart. The order record is posted in
// the background; its outcome never affects the response.
func HandleCheckout(submitter *checkout.Submitter, couponSvc *service.CouponService, storage cart.Storage, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		total := store.TotalPrice()

		var discount float64
		var appliedCoupon *domain.Coupon
		if req.CouponCode != nil && *req.CouponCode != "" {
			coupon, d, err := couponSvc.ValidateCoupon(c.Request.Context(), *req.CouponCode, total)
			if err != nil {
				if cerr, ok := err.(*errors.ErrCouponInvalid); ok {
					c.JSON(http.StatusUnprocessableEntity, gin.H{"error": cerr.Error()})
					return
				}
				logger.Error("Failed to validate coupon", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			discount = d
			appliedCoupon = coupon
		}

		submitReq := checkout.Request{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			Items:           store.Lines(),
			TotalPrice:      total,
		}
		if appliedCoupon != nil {
			submitReq.CouponCode = &appliedCoupon.Code
			submitReq.DiscountAmount = discount
		}

		result, err := submitter.Submit(c.Request.Context(), submitReq)
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		// The handoff happened, the cart is spent and the coupon use counts
		store.Clear(c.Request.Context())
		if appliedCoupon != nil {
			if err := couponSvc.RedeemCoupon(c.Request.Context(), appliedCoupon); err != nil {
				// Usage tracking only; the checkout already succeeded
				logger.Warn("Failed to bump coupon usage",
					zap.String("code", appliedCoupon.Code), zap.Error(err))
			}
		}

		resp := gin.H{
			"success":      true,
			"whatsapp_url": result.WhatsAppURL,
		}
		if appliedCoupon != nil {
			resp["coupon_code"] = appliedCoupon.Code
			resp["discount_amount"] = discount
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleBuyNowCheckout handles the single-product checkout that bypasses the cart
func HandleBuyNowCheckout(submitter *checkout.Submitter, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuyNowCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product for buy-now", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}

		result, err := submitter.SubmitBuyNow(c.Request.Context(), checkout.BuyNowRequest{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			Product: cart.ProductInfo{
				ProductID:     product.ID.String(),
				Name:          product.Name,
				UnitPrice:     product.Price,
				OriginalPrice: product.OriginalPrice,
				ImageURLs:     product.ImageURLs,
			},
			SelectedSize:  req.SelectedSize,
			SelectedColor: req.SelectedColor,
			Quantity:      quantity,
		})
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"whatsapp_url": result.WhatsAppURL,
		})
	}
}

// HandleValidateCoupon checks a coupon code and returns the discount it yields
func HandleValidateCoupon(couponSvc *service.CouponService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		coupon, discount, err := couponSvc.ValidateCoupon(c.Request.Context(), req.Code, req.CartTotal)
		if err != nil {
			if cerr, ok := err.(*errors.ErrCouponInvalid); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"valid": false,
					"error": cerr.Error(),
				})
				return
			}
			logger.Error("Failed to validate coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":           true,
			"code":            coupon.Code,
			"discount_amount": discount,
		})
	}
}

// HandleListActiveCoupons lists coupons currently redeemable at checkout
func HandleListActiveCoupons(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := repos.Coupon.ListActive(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list active coupons", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

func respondCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	if verr, ok := err.(*errors.ErrValidation); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}
	logger.Error("Checkout failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
