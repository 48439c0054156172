package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, name, description, price, original_price, category_id,
	stock_quantity, is_active, is_trending, image_urls, available_sizes, available_colors,
	created_at, updated_at`

func (r *productRepository) List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}

	if activeOnly {
		query += ` AND is_active = true`
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += ` AND category_id = $1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *productRepository) ListTrending(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active = true AND is_trending = true
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list trending products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListRecommendations returns active products from the same category,
// excluding the product being viewed. With no category it falls back to the
// newest active products.
func (r *productRepository) ListRecommendations(ctx context.Context, excludeID uuid.UUID, categoryID *uuid.UUID, limit int) ([]*domain.Product, error) {
	var (
		query string
		args  []interface{}
	)

	if categoryID != nil {
		query = `SELECT ` + productColumns + ` FROM products
			WHERE is_active = true AND id != $1 AND category_id = $2
			ORDER BY created_at DESC
			LIMIT $3`
		args = []interface{}{excludeID, *categoryID, limit}
	} else {
		query = `SELECT ` + productColumns + ` FROM products
			WHERE is_active = true AND id != $1
			ORDER BY created_at DESC
			LIMIT $2`
		args = []interface{}{excludeID, limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list recommendations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, original_price, category_id,
			stock_quantity, is_active, is_trending, image_urls, available_sizes, available_colors,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.CategoryID,
		product.StockQuantity,
		product.IsActive,
		product.IsTrending,
		pq.Array(product.ImageURLs),
		pq.Array(product.AvailableSizes),
		pq.Array(product.AvailableColors),
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, price = $4, original_price = $5, category_id = $6,
			stock_quantity = $7, is_active = $8, is_trending = $9,
			image_urls = $10, available_sizes = $11, available_colors = $12,
			updated_at = $13
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.CategoryID,
		product.StockQuantity,
		product.IsActive,
		product.IsTrending,
		pq.Array(product.ImageURLs),
		pq.Array(product.AvailableSizes),
		pq.Array(product.AvailableColors),
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update product", zap.String("id", product.ID.String()), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}

	return nil
}

func (r *productRepository) SetTrending(ctx context.Context, id uuid.UUID, trending bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_trending = $2, updated_at = $3 WHERE id = $1`,
		id, trending, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to set trending flag", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}

	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var description sql.NullString
	var originalPrice sql.NullFloat64
	var categoryID uuid.NullUUID

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&product.Price,
		&originalPrice,
		&categoryID,
		&product.StockQuantity,
		&product.IsActive,
		&product.IsTrending,
		pq.Array(&product.ImageURLs),
		pq.Array(&product.AvailableSizes),
		pq.Array(&product.AvailableColors),
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		product.Description = &description.String
	}
	if originalPrice.Valid {
		product.OriginalPrice = &originalPrice.Float64
	}
	if categoryID.Valid {
		id := categoryID.UUID
		product.CategoryID = &id
	}

	return &product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
