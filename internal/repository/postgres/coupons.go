package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

type couponRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *sql.DB, logger *zap.Logger) *couponRepository {
	return &couponRepository{
		db:     db,
		logger: logger,
	}
}

const couponColumns = `id, code, discount_type, discount_value, min_purchase_amount,
	max_discount_amount, valid_from, valid_until, usage_limit, used_count, is_active,
	created_at, updated_at`

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM discount_coupons WHERE code = $1`

	code = strings.ToUpper(strings.TrimSpace(code))
	row := r.db.QueryRowContext(ctx, query, code)
	coupon, err := scanCoupon(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "coupon", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get coupon", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) ListActive(ctx context.Context) ([]*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM discount_coupons
		WHERE is_active = true
			AND valid_from <= NOW()
			AND (valid_until IS NULL OR valid_until >= NOW())
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list active coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanCoupons(rows)
}

func (r *couponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM discount_coupons ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanCoupons(rows)
}

func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		INSERT INTO discount_coupons (
			id, code, discount_type, discount_value, min_purchase_amount,
			max_discount_amount, valid_from, valid_until, usage_limit, used_count, is_active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = now
	}
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MinPurchaseAmount,
		coupon.MaxDiscountAmount,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.UsageLimit,
		coupon.UsedCount,
		coupon.IsActive,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return &errors.ErrConflict{Message: "coupon code already exists: " + coupon.Code}
		}
		r.logger.Error("Failed to create coupon", zap.Error(err))
		return err
	}

	return nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		UPDATE discount_coupons SET
			discount_type = $2, discount_value = $3, min_purchase_amount = $4,
			max_discount_amount = $5, valid_from = $6, valid_until = $7,
			usage_limit = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	coupon.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MinPurchaseAmount,
		coupon.MaxDiscountAmount,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.UsageLimit,
		coupon.IsActive,
		coupon.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update coupon", zap.String("id", coupon.ID.String()), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "coupon", ID: coupon.ID.String()}
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discount_coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete coupon", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "coupon", ID: id.String()}
	}
	return nil
}

func (r *couponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE discount_coupons SET used_count = used_count + 1, updated_at = $2 WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to increment coupon usage", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

// DeactivateExpired flips is_active off for coupons past their valid_until.
// Returns the number of coupons deactivated.
func (r *couponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE discount_coupons
		SET is_active = false, updated_at = $1
		WHERE is_active = true AND valid_until IS NOT NULL AND valid_until < NOW()`,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to deactivate expired coupons", zap.Error(err))
		return 0, err
	}
	return result.RowsAffected()
}

func (r *couponRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM discount_coupons`).Scan(&count); err != nil {
		r.logger.Error("Failed to count coupons", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var maxDiscount sql.NullFloat64
	var validUntil sql.NullTime
	var usageLimit sql.NullInt64

	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinPurchaseAmount,
		&maxDiscount,
		&coupon.ValidFrom,
		&validUntil,
		&usageLimit,
		&coupon.UsedCount,
		&coupon.IsActive,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxDiscount.Valid {
		coupon.MaxDiscountAmount = &maxDiscount.Float64
	}
	if validUntil.Valid {
		coupon.ValidUntil = &validUntil.Time
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		coupon.UsageLimit = &limit
	}

	return &coupon, nil
}

func scanCoupons(rows *sql.Rows) ([]*domain.Coupon, error) {
	var coupons []*domain.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, coupon)
	}
	return coupons, rows.Err()
}
