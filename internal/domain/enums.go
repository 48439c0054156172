package domain

// OrderStatus represents the fulfillment status of a recorded order
type OrderStatus string

const (
	// WHATSAPP_PENDING - order handed off to WhatsApp, awaiting confirmation
	OrderStatusWhatsAppPending OrderStatus = "whatsapp_pending"
	// CONFIRMED - order confirmed with the customer
	OrderStatusConfirmed OrderStatus = "confirmed"
	// PROCESSING - order being prepared
	OrderStatusProcessing OrderStatus = "processing"
	// SHIPPED - order handed to the courier
	OrderStatusShipped OrderStatus = "shipped"
	// DELIVERED - order delivered
	OrderStatusDelivered OrderStatus = "delivered"
	// CANCELLED - order cancelled
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid. The admin panel may move an
// order between any two valid statuses, so there is no transition graph.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusWhatsAppPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// DiscountType distinguishes percentage coupons from fixed-amount coupons
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}
