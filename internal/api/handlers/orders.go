package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
)

// CreateOrderRequest is the order record posted after a checkout handoff
type CreateOrderRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required"`
	CustomerPhone   string                `json:"customer_phone" binding:"required"`
	CustomerAddress string                `json:"customer_address" binding:"required"`
	Products        []domain.OrderProduct `json:"products" binding:"required,min=1"`
	TotalAmount     float64               `json:"total_amount" binding:"required,min=0"`
	CouponCode      *string               `json:"coupon_code"`
	DiscountAmount  float64               `json:"discount_amount"`
	Status          domain.OrderStatus    `json:"status"`
}

// HandleCreateOrder records an order. The record is bookkeeping for the shop
// owner: a failed insert is logged and the response still reports success, so
// a database hiccup never surfaces to a customer who already handed off the
// order on WhatsApp.
func HandleCreateOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := req.Status
		if status == "" {
			status = domain.OrderStatusWhatsAppPending
		}
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		order := &domain.Order{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
			Products:        req.Products,
			TotalAmount:     req.TotalAmount,
			CouponCode:      req.CouponCode,
			DiscountAmount:  req.DiscountAmount,
			Status:          status,
		}

		if err := repos.Order.Create(c.Request.Context(), order); err != nil {
			logger.Error("Failed to record order",
				zap.String("customer", req.CustomerName),
				zap.Float64("total", req.TotalAmount),
				zap.Error(err),
			)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"order_id": order.ID,
		})
	}
}
