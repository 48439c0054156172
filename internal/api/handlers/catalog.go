package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

const (
	trendingLimit       = 8
	recommendationLimit = 4
)

// HandleListProducts lists active products, optionally filtered by category
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *uuid.UUID
		if raw := c.Query("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
				return
			}
			categoryID = &id
		}

		products, err := repos.Product.List(c.Request.Context(), categoryID, true)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleGetProduct returns one product by id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleListTrending returns the trending products strip for the home page
func HandleListTrending(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repos.Product.ListTrending(c.Request.Context(), trendingLimit)
		if err != nil {
			logger.Error("Failed to list trending products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleListRecommendations returns products related to the one being viewed
func HandleListRecommendations(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product for recommendations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		products, err := repos.Product.ListRecommendations(c.Request.Context(), id, product.CategoryID, recommendationLimit)
		if err != nil {
			logger.Error("Failed to list recommendations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleListCategories lists all categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// CreateReviewRequest is the payload for posting a product review
type CreateReviewRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Rating       int     `json:"rating" binding:"required,min=1,max=5"`
	Comment      *string `json:"comment"`
	AudioURL     *string `json:"audio_url"`
}

// HandleListReviews lists reviews for a product
func HandleListReviews(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		reviews, err := repos.Review.ListByProductID(c.Request.Context(), id)
		if err != nil {
			logger.Error("Failed to list reviews", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// HandleCreateReview records a customer review on a product
func HandleCreateReview(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Reject reviews on products that do not exist
		if _, err := repos.Product.GetByID(c.Request.Context(), id); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product for review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		review := &domain.Review{
			ProductID:    id,
			CustomerName: req.CustomerName,
			Rating:       req.Rating,
			Comment:      req.Comment,
			AudioURL:     req.AudioURL,
		}
		if err := repos.Review.Create(c.Request.Context(), review); err != nil {
			logger.Error("Failed to create review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}
