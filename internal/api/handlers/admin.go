package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

// AdminProductRequest is the payload for creating or updating a product
type AdminProductRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     *string  `json:"description"`
	Price           float64  `json:"price" binding:"required,min=0"`
	OriginalPrice   *float64 `json:"original_price"`
	CategoryID      *string  `json:"category_id"`
	StockQuantity   int      `json:"stock_quantity" binding:"min=0"`
	IsActive        *bool    `json:"is_active"`
	ImageURLs       []string `json:"image_urls"`
	AvailableSizes  []string `json:"available_sizes"`
	AvailableColors []string `json:"available_colors"`
}

// AdminCategoryRequest is the payload for creating a category
type AdminCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AdminCouponRequest is the payload for creating or updating a coupon
type AdminCouponRequest struct {
	Code              string     `json:"code" binding:"required"`
	DiscountType      string     `json:"discount_type" binding:"required"`
	DiscountValue     float64    `json:"discount_value" binding:"required,min=0"`
	MinPurchaseAmount float64    `json:"min_purchase_amount" binding:"min=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
	UsageLimit        *int       `json:"usage_limit"`
	IsActive          *bool      `json:"is_active"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// SetTrendingRequest toggles the trending flag on a product
type SetTrendingRequest struct {
	IsTrending bool `json:"is_trending"`
}

func (r *AdminProductRequest) toDomain() (*domain.Product, error) {
	product := &domain.Product{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		StockQuantity:   r.StockQuantity,
		IsActive:        true,
		ImageURLs:       r.ImageURLs,
		AvailableSizes:  r.AvailableSizes,
		AvailableColors: r.AvailableColors,
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	if r.CategoryID != nil && *r.CategoryID != "" {
		id, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = &id
	}
	return product, nil
}

// HandleAdminListProducts lists all products including inactive ones
func HandleAdminListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repos.Product.List(c.Request.Context(), nil, false)
		if err != nil {
			logger.Error("Failed to list products for admin", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleAdminCreateProduct creates a product
func HandleAdminCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}

		if err := repos.Product.Create(c.Request.Context(), product); err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// HandleAdminUpdateProduct updates a product
func HandleAdminUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req AdminProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		product.ID = id

		// Preserve the trending flag across updates
		existing, err := repos.Product.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product for update", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		product.IsTrending = existing.IsTrending

		if err := repos.Product.Update(c.Request.Context(), product); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to update product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleAdminDeleteProduct deletes a product
func HandleAdminDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		if err := repos.Product.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to delete product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminSetTrending toggles the trending flag on a product
func HandleAdminSetTrending(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req SetTrendingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repos.Product.SetTrending(c.Request.Context(), id, req.IsTrending); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to set trending flag", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminCreateCategory creates a category
func HandleAdminCreateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category := &domain.Category{Name: req.Name}
		if err := repos.Category.Create(c.Request.Context(), category); err != nil {
			logger.Error("Failed to create category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"category": category})
	}
}

// HandleAdminUpdateCategory renames a category
func HandleAdminUpdateCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var req AdminCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category := &domain.Category{ID: id, Name: req.Name}
		if err := repos.Category.Update(c.Request.Context(), category); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			logger.Error("Failed to update category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// HandleAdminDeleteCategory deletes a category
func HandleAdminDeleteCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		if err := repos.Category.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			logger.Error("Failed to delete category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (r *AdminCouponRequest) toDomain() (*domain.Coupon, error) {
	discountType := domain.DiscountType(r.DiscountType)
	if !discountType.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "invalid discount_type",
			Fields:  map[string]string{"discount_type": "must be percentage or fixed"},
		}
	}

	coupon := &domain.Coupon{
		Code:              r.Code,
		DiscountType:      discountType,
		DiscountValue:     r.DiscountValue,
		MinPurchaseAmount: r.MinPurchaseAmount,
		MaxDiscountAmount: r.MaxDiscountAmount,
		ValidUntil:        r.ValidUntil,
		UsageLimit:        r.UsageLimit,
		IsActive:          true,
	}
	if r.ValidFrom != nil {
		coupon.ValidFrom = *r.ValidFrom
	}
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}
	return coupon, nil
}

// HandleAdminListCoupons lists all coupons including inactive and expired
func HandleAdminListCoupons(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := repos.Coupon.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list coupons for admin", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

// HandleAdminCreateCoupon creates a coupon
func HandleAdminCreateCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		coupon, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := repos.Coupon.Create(c.Request.Context(), coupon); err != nil {
			if _, ok := err.(*errors.ErrConflict); ok {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to create coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
	}
}

// HandleAdminUpdateCoupon updates a coupon
func HandleAdminUpdateCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
			return
		}

		var req AdminCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		coupon, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		coupon.ID = id

		if err := repos.Coupon.Update(c.Request.Context(), coupon); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
				return
			}
			logger.Error("Failed to update coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

// HandleAdminDeleteCoupon deletes a coupon
func HandleAdminDeleteCoupon(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
			return
		}

		if err := repos.Coupon.Delete(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
				return
			}
			logger.Error("Failed to delete coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminListOrders lists recorded orders, optionally filtered by status
func HandleAdminListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		offset := 0
		if raw := c.Query("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
				limit = v
			}
		}
		if raw := c.Query("offset"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
				offset = v
			}
		}

		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := domain.OrderStatus(raw)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		orders, err := repos.Order.List(c.Request.Context(), status, limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleAdminUpdateOrderStatus moves an order to a new status
func HandleAdminUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		if err := repos.Order.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminStats returns dashboard counters. The counts are independent
// queries, so they run concurrently.
func HandleAdminStats(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			productCount, couponCount, orderCount, pendingCount int
		)

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			var err error
			productCount, err = repos.Product.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			couponCount, err = repos.Coupon.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			orderCount, err = repos.Order.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			pendingCount, err = repos.Order.CountByStatus(ctx, domain.OrderStatusWhatsAppPending)
			return err
		})

		if err := g.Wait(); err != nil {
			logger.Error("Failed to gather admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":       productCount,
			"coupons":        couponCount,
			"orders":         orderCount,
			"pending_orders": pendingCount,
		})
	}
}
