package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/repository"
	"github.com/nirajd1102/shopping-website/pkg/errors"
)

const couponSweepInterval = 10 * time.Minute

var couponSweepMu sync.Mutex

// CouponService validates and redeems discount coupons
type CouponService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCouponService creates a new coupon service
func NewCouponService(repos *repository.Repositories, logger *zap.Logger) *CouponService {
	return &CouponService{
		repos:  repos,
		logger: logger,
	}
}

// ValidateCoupon checks a coupon code against the cart total and returns the
// coupon with the discount amount it yields. Codes are case-insensitive.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string, cartTotal float64) (*domain.Coupon, float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "empty code"}
	}

	coupon, err := s.repos.Coupon.GetByCode(ctx, code)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "code not found"}
		}
		return nil, 0, err
	}

	now := time.Now()
	switch {
	case !coupon.IsActive:
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "coupon is inactive"}
	case now.Before(coupon.ValidFrom):
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "coupon is not yet valid"}
	case coupon.ValidUntil != nil && now.After(*coupon.ValidUntil):
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "coupon has expired"}
	case coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit:
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "usage limit reached"}
	case cartTotal < coupon.MinPurchaseAmount:
		return nil, 0, &errors.ErrCouponInvalid{Code: code, Reason: "cart total below minimum purchase amount"}
	}

	return coupon, computeDiscount(coupon, cartTotal), nil
}

// RedeemCoupon bumps the usage counter after a checkout used the coupon
func (s *CouponService) RedeemCoupon(ctx context.Context, coupon *domain.Coupon) error {
	if err := s.repos.Coupon.IncrementUsage(ctx, coupon.ID); err != nil {
		s.logger.Error("Failed to redeem coupon",
			zap.String("code", coupon.Code), zap.Error(err))
		return err
	}
	return nil
}

// computeDiscount returns the rupee discount a coupon yields on a cart total.
// Percentage discounts honor MaxDiscountAmount; a discount never exceeds the
// total itself.
func computeDiscount(coupon *domain.Coupon, cartTotal float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case domain.DiscountTypePercentage:
		discount = cartTotal * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	case domain.DiscountTypeFixed:
		discount = coupon.DiscountValue
	}
	if discount > cartTotal {
		discount = cartTotal
	}
	return discount
}

// RunCouponSweepOnce deactivates coupons past their valid_until. Does not
// block; logs the outcome.
func RunCouponSweepOnce(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) {
	n, err := repos.Coupon.DeactivateExpired(ctx)
	if err != nil {
		logger.Error("Coupon sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("Coupon sweep deactivated expired coupons", zap.Int64("count", n))
	}
}

// RunCouponSweepLoop runs the sweep once, then every couponSweepInterval.
// Call from a goroutine.
func RunCouponSweepLoop(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) {
	couponSweepMu.Lock()
	RunCouponSweepOnce(ctx, repos, logger)
	couponSweepMu.Unlock()

	ticker := time.NewTicker(couponSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			couponSweepMu.Lock()
			RunCouponSweepOnce(ctx, repos, logger)
			couponSweepMu.Unlock()
		}
	}
}
