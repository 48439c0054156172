package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:  NewProductRepository(db, logger),
		Category: NewCategoryRepository(db, logger),
		Coupon:   NewCouponRepository(db, logger),
		Order:    NewOrderRepository(db, logger),
		Review:   NewReviewRepository(db, logger),
	}
}
