package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api/handlers"
	"github.com/nirajd1102/shopping-website/internal/api/middleware"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/checkout"
	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	storage cart.Storage,
	submitter *checkout.Submitter,
	couponSvc *service.CouponService,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /api/products",
				"GET /api/products/:id",
				"GET /api/categories",
				"GET /api/trending",
				"GET /api/cart",
				"POST /api/checkout",
				"POST /api/orders",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/products", handlers.HandleListProducts(repos, logger))
		api.GET("/products/:id", handlers.HandleGetProduct(repos, logger))
		api.GET("/products/:id/recommendations", handlers.HandleListRecommendations(repos, logger))
		api.GET("/products/:id/reviews", handlers.HandleListReviews(repos, logger))
		api.POST("/products/:id/reviews", handlers.HandleCreateReview(repos, logger))
		api.GET("/categories", handlers.HandleListCategories(repos, logger))
		api.GET("/trending", handlers.HandleListTrending(repos, logger))

		// Coupons
		api.GET("/coupons/active", handlers.HandleListActiveCoupons(repos, logger))
		api.POST("/coupons/validate", handlers.HandleValidateCoupon(couponSvc, logger))

		// Session cart and checkout
		sessionRoutes := api.Group("")
		sessionRoutes.Use(middleware.SessionMiddleware())
		{
			sessionRoutes.GET("/cart", handlers.HandleGetCart(storage, logger))
			sessionRoutes.POST("/cart/items", handlers.HandleAddCartItem(storage, repos, logger))
			sessionRoutes.PATCH("/cart/items", handlers.HandleUpdateCartItem(storage, logger))
			sessionRoutes.DELETE("/cart/items", handlers.HandleRemoveCartItem(storage, logger))
			sessionRoutes.DELETE("/cart", handlers.HandleClearCart(storage, logger))
			sessionRoutes.POST("/checkout", handlers.HandleCheckout(submitter, couponSvc, storage, logger))
		}
		api.POST("/checkout/buy-now", handlers.HandleBuyNowCheckout(submitter, repos, logger))

		// Order record intake
		api.POST("/orders", handlers.HandleCreateOrder(repos, logger))

		// Admin routes (require API key)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg, logger))
		{
			adminRoutes.GET("/products", handlers.HandleAdminListProducts(repos, logger))
			adminRoutes.POST("/products", handlers.HandleAdminCreateProduct(repos, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleAdminUpdateProduct(repos, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleAdminDeleteProduct(repos, logger))
			adminRoutes.PATCH("/products/:id/trending", handlers.HandleAdminSetTrending(repos, logger))

			adminRoutes.POST("/categories", handlers.HandleAdminCreateCategory(repos, logger))
			adminRoutes.PUT("/categories/:id", handlers.HandleAdminUpdateCategory(repos, logger))
			adminRoutes.DELETE("/categories/:id", handlers.HandleAdminDeleteCategory(repos, logger))

			adminRoutes.GET("/coupons", handlers.HandleAdminListCoupons(repos, logger))
			adminRoutes.POST("/coupons", handlers.HandleAdminCreateCoupon(repos, logger))
			adminRoutes.PUT("/coupons/:id", handlers.HandleAdminUpdateCoupon(repos, logger))
			adminRoutes.DELETE("/coupons/:id", handlers.HandleAdminDeleteCoupon(repos, logger))

			adminRoutes.GET("/orders", handlers.HandleAdminListOrders(repos, logger))
			adminRoutes.PATCH("/orders/:id/status", handlers.HandleAdminUpdateOrderStatus(repos, logger))

			adminRoutes.GET("/stats", handlers.HandleAdminStats(repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
