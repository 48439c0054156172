package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nirajd1102/shopping-website/internal/cart"
)

func twoLineRequest() Request {
	return Request{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Items: []cart.Line{
			{ProductID: "p1", Name: "Embroidered Kurta", UnitPrice: 500, Quantity: 2, SelectedSize: strPtr("M"), SelectedColor: strPtr("Red")},
			{ProductID: "p2", Name: "Silk Dupatta", UnitPrice: 250, Quantity: 1},
		},
		TotalPrice: 1250,
	}
}

func TestFormatOrderMessageBlocks(t *testing.T) {
	msg := FormatOrderMessage(twoLineRequest())

	assert.True(t, strings.HasPrefix(msg, "🛍️ *NEW ORDER REQUEST*"))
	assert.Contains(t, msg, "*CUSTOMER DETAILS*")
	assert.Contains(t, msg, "👤 *Name:* Priya Sharma")
	assert.Contains(t, msg, "📱 *Phone:* 9876543210")
	assert.Contains(t, msg, "📍 *Address:* 42 MG Road, Bengaluru")
	assert.Contains(t, msg, "*ORDER ITEMS*")
	assert.Contains(t, msg, "1. *Embroidered Kurta*")
	assert.Contains(t, msg, "📏 Size: M")
	assert.Contains(t, msg, "🎨 Color: Red")
	assert.Contains(t, msg, "💵 Subtotal: ₹1000.00")
	assert.Contains(t, msg, "2. *Silk Dupatta*")
	assert.Contains(t, msg, "*ORDER SUMMARY*")
	assert.Contains(t, msg, "📦 Total Items: 3")
	assert.Contains(t, msg, "💰 Total Amount: ₹1250.00")
	assert.Contains(t, msg, "🚚 Shipping: Free")
	assert.Contains(t, msg, "Thank you! 🙏")
}

func TestFormatOrderMessageShowsCouponBreakdown(t *testing.T) {
	req := twoLineRequest()
	req.CouponCode = strPtr("FESTIVE10")
	req.DiscountAmount = 125

	msg := FormatOrderMessage(req)
	assert.Contains(t, msg, "💰 Subtotal: ₹1250.00")
	assert.Contains(t, msg, "🎟️ Coupon (FESTIVE10): -₹125.00")
	assert.Contains(t, msg, "💵 Total Amount: ₹1125.00")
}

func TestFormatOrderMessageOmitsAbsentVariants(t *testing.T) {
	msg := FormatOrderMessage(Request{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Items: []cart.Line{
			{ProductID: "p2", Name: "Silk Dupatta", UnitPrice: 250, Quantity: 1},
		},
		TotalPrice: 250,
	})

	assert.NotContains(t, msg, "Size:")
	assert.NotContains(t, msg, "Color:")
}

func TestFormatOrderMessageIsDeterministic(t *testing.T) {
	req := twoLineRequest()
	assert.Equal(t, FormatOrderMessage(req), FormatOrderMessage(req))
}

func TestFormatBuyNowMessageDiscount(t *testing.T) {
	orig := 1000.0
	msg := FormatBuyNowMessage(BuyNowRequest{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Product: cart.ProductInfo{
			ProductID:     "p1",
			Name:          "Embroidered Kurta",
			UnitPrice:     750,
			OriginalPrice: &orig,
		},
		Quantity: 2,
	})

	assert.Contains(t, msg, "*PRODUCT DETAILS*")
	assert.Contains(t, msg, "🆔 *Product ID:* p1")
	assert.Contains(t, msg, "💸 *Original Price:* ₹1000.00")
	assert.Contains(t, msg, "🎯 *Discount:* 25% OFF")
	assert.Contains(t, msg, "💵 *Total Amount:* ₹1500.00")
}

func TestFormatBuyNowMessageNoDiscountLineWithoutOriginalPrice(t *testing.T) {
	msg := FormatBuyNowMessage(BuyNowRequest{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Product:         cart.ProductInfo{ProductID: "p1", Name: "Kurta", UnitPrice: 500},
		Quantity:        1,
	})

	assert.NotContains(t, msg, "Original Price")
	assert.NotContains(t, msg, "Discount")
}
