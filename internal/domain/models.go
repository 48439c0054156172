package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product
type Product struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	Price           float64
	OriginalPrice   *float64 // pre-discount price, shown struck through
	CategoryID      *uuid.UUID
	StockQuantity   int
	IsActive        bool
	IsTrending      bool
	ImageURLs       []string
	AvailableSizes  []string
	AvailableColors []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Coupon represents a discount coupon
type Coupon struct {
	ID                uuid.UUID
	Code              string // stored upper-case
	DiscountType      DiscountType
	DiscountValue     float64
	MinPurchaseAmount float64
	MaxDiscountAmount *float64 // percentage coupons only
	ValidFrom         time.Time
	ValidUntil        *time.Time
	UsageLimit        *int
	UsedCount         int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Order represents a recorded customer order. Items are stored as a JSONB
// array on the row, matching the shape the checkout submitter posts.
type Order struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Products        []OrderProduct
	TotalAmount     float64
	CouponCode      *string
	DiscountAmount  float64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderProduct is one purchased line inside an order record
type OrderProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

// Review represents a customer review on a product
type Review struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	CustomerName string
	Rating       int // 1..5
	Comment      *string
	AudioURL     *string
	CreatedAt    time.Time
}
