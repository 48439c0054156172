package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `id, customer_name, customer_phone, customer_address, products,
	total_amount, coupon_code, discount_amount, status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_name, customer_phone, customer_address, products,
			total_amount, coupon_code, discount_amount, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusWhatsAppPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	productsJSON, err := json.Marshal(order.Products)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerAddress,
		productsJSON,
		order.TotalAmount,
		order.CouponCode,
		order.DiscountAmount,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	var (
		query string
		args  []interface{}
	)

	if status != nil {
		query = `SELECT ` + orderColumns + ` FROM orders
			WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []interface{}{*status, limit, offset}
	} else {
		query = `SELECT ` + orderColumns + ` FROM orders
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []interface{}{limit, offset}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to update order status",
			zap.String("id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.logger.Error("Failed to count orders", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count orders by status", zap.String("status", string(status)), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var productsJSON []byte
	var couponCode sql.NullString

	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.CustomerAddress,
		&productsJSON,
		&order.TotalAmount,
		&couponCode,
		&order.DiscountAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(productsJSON) > 0 {
		if err := json.Unmarshal(productsJSON, &order.Products); err != nil {
			return nil, err
		}
	}
	if couponCode.Valid {
		order.CouponCode = &couponCode.String
	}

	return &order, nil
}
