package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api/middleware"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

// AddCartItemRequest is the payload for adding a product to the cart
type AddCartItemRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	SelectedSize  *string `json:"selected_size"`
	SelectedColor *string `json:"selected_color"`
}

// UpdateCartItemRequest changes the quantity of one cart line
type UpdateCartItemRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	Quantity      int     `json:"quantity"`
	SelectedSize  *string `json:"selected_size"`
	SelectedColor *string `json:"selected_color"`
}

// RemoveCartItemRequest identifies the cart line to drop
type RemoveCartItemRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	SelectedSize  *string `json:"selected_size"`
	SelectedColor *string `json:"selected_color"`
}

func cartResponse(c *gin.Context, store *cart.Store) {
	c.JSON(http.StatusOK, gin.H{
		"session_id":  middleware.GetSessionID(c),
		"items":       store.Lines(),
		"total_items": store.TotalItems(),
		"total_price": store.TotalPrice(),
	})
}

// HandleGetCart returns the cart for the current session
func HandleGetCart(storage cart.Storage, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		cartResponse(c, store)
	}
}

// HandleAddCartItem merges a product into the session cart. The product is
// looked up so stale or fabricated ids never enter the cart.
func HandleAddCartItem(storage cart.Storage, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
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
			logger.Error("Failed to get product for cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		store.AddItem(c.Request.Context(), cart.ProductInfo{
			ProductID:     product.ID.String(),
			Name:          product.Name,
			UnitPrice:     product.Price,
			OriginalPrice: product.OriginalPrice,
			ImageURLs:     product.ImageURLs,
		}, req.SelectedSize, req.SelectedColor)

		cartResponse(c, store)
	}
}

// HandleUpdateCartItem sets the quantity of a cart line. Zero removes it.
func HandleUpdateCartItem(storage cart.Storage, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		store.UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity, req.SelectedSize, req.SelectedColor)
		cartResponse(c, store)
	}
}

// HandleRemoveCartItem drops one cart line
func HandleRemoveCartItem(storage cart.Storage, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RemoveCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		store.RemoveItem(c.Request.Context(), req.ProductID, req.SelectedSize, req.SelectedColor)
		cartResponse(c, store)
	}
}

// HandleClearCart empties the session cart
func HandleClearCart(storage cart.Storage, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := cart.NewStore(c.Request.Context(), storage, middleware.GetSessionID(c), logger)
		store.Clear(c.Request.Context())
		cartResponse(c, store)
	}
}
