package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nirajd1102/shopping-website/internal/domain"
)

// ProductRepository defines catalog product data access methods
type ProductRepository interface {
	List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListTrending(ctx context.Context, limit int) ([]*domain.Product, error)
	ListRecommendations(ctx context.Context, excludeID uuid.UUID, categoryID *uuid.UUID, limit int) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetTrending(ctx context.Context, id uuid.UUID, trending bool) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines category data access methods
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CouponRepository defines discount coupon data access methods
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListActive(ctx context.Context) ([]*domain.Coupon, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	Create(ctx context.Context, coupon *domain.Coupon) error
	Update(ctx context.Context, coupon *domain.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	DeactivateExpired(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

// OrderRepository defines order record data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.OrderStatus) (int, error)
}

// ReviewRepository defines product review data access methods
type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Product  ProductRepository
	Category CategoryRepository
	Coupon   CouponRepository
	Order    OrderRepository
	Review   ReviewRepository
}
