package checkout

import (
	"fmt"
	"strings"
)

const divider = "━━━━━━━━━━━━━━━━━━━━\n"

// FormatOrderMessage renders the human-readable order summary sent over
// WhatsApp. The output is deterministic for a given request so the shop
// owner always sees the same layout.
func FormatOrderMessage(req Request) string {
	var b strings.Builder

	b.WriteString("🛍️ *NEW ORDER REQUEST*\n\n")
	writeCustomerBlock(&b, req.CustomerName, req.CustomerPhone, req.CustomerAddress)

	b.WriteString(divider)
	b.WriteString("*ORDER ITEMS*\n")
	b.WriteString(divider)
	b.WriteString("\n")

	totalItems := 0
	for i, item := range req.Items {
		totalItems += item.Quantity
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Name)
		if item.SelectedSize != nil {
			fmt.Fprintf(&b, "   📏 Size: %s\n", *item.SelectedSize)
		}
		if item.SelectedColor != nil {
			fmt.Fprintf(&b, "   🎨 Color: %s\n", *item.SelectedColor)
		}
		fmt.Fprintf(&b, "   💰 Price: ₹%.2f each\n", item.UnitPrice)
		fmt.Fprintf(&b, "   📦 Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   💵 Subtotal: ₹%.2f\n\n", item.Subtotal())
	}

	b.WriteString(divider)
	b.WriteString("*ORDER SUMMARY*\n")
	b.WriteString(divider)
	b.WriteString("\n")
	fmt.Fprintf(&b, "📦 Total Items: %d\n", totalItems)
	if req.CouponCode != nil && req.DiscountAmount > 0 {
		fmt.Fprintf(&b, "💰 Subtotal: ₹%.2f\n", req.TotalPrice)
		fmt.Fprintf(&b, "🎟️ Coupon (%s): -₹%.2f\n", *req.CouponCode, req.DiscountAmount)
		fmt.Fprintf(&b, "💵 Total Amount: ₹%.2f\n", req.PayableTotal())
	} else {
		fmt.Fprintf(&b, "💰 Total Amount: ₹%.2f\n", req.TotalPrice)
	}
	b.WriteString("🚚 Shipping: Free\n\n")
	writeClosing(&b)

	return b.String()
}

// FormatBuyNowMessage renders the summary for the single-product buy-now
// path. It carries the product id and, when the product is discounted, the
// original price and discount percentage.
func FormatBuyNowMessage(req BuyNowRequest) string {
	var b strings.Builder
	subtotal := req.Product.UnitPrice * float64(req.Quantity)

	b.WriteString("🛍️ *NEW ORDER REQUEST*\n\n")
	writeCustomerBlock(&b, req.CustomerName, req.CustomerPhone, req.CustomerAddress)

	b.WriteString(divider)
	b.WriteString("*PRODUCT DETAILS*\n")
	b.WriteString(divider)
	b.WriteString("\n")
	fmt.Fprintf(&b, "*Product:* %s\n", req.Product.Name)
	fmt.Fprintf(&b, "🆔 *Product ID:* %s\n", req.Product.ProductID)
	if req.SelectedSize != nil {
		fmt.Fprintf(&b, "📏 *Size:* %s\n", *req.SelectedSize)
	}
	if req.SelectedColor != nil {
		fmt.Fprintf(&b, "🎨 *Color:* %s\n", *req.SelectedColor)
	}
	fmt.Fprintf(&b, "💰 *Price:* ₹%.2f each\n", req.Product.UnitPrice)
	if req.Product.OriginalPrice != nil && *req.Product.OriginalPrice > 0 {
		orig := *req.Product.OriginalPrice
		fmt.Fprintf(&b, "💸 *Original Price:* ₹%.2f\n", orig)
		discount := (orig - req.Product.UnitPrice) / orig * 100
		fmt.Fprintf(&b, "🎯 *Discount:* %.0f%% OFF\n", discount)
	}
	fmt.Fprintf(&b, "📦 *Quantity:* %d\n\n", req.Quantity)

	b.WriteString(divider)
	b.WriteString("*ORDER SUMMARY*\n")
	b.WriteString(divider)
	b.WriteString("\n")
	fmt.Fprintf(&b, "💰 *Subtotal:* ₹%.2f\n", subtotal)
	b.WriteString("🚚 *Shipping:* Free\n")
	fmt.Fprintf(&b, "💵 *Total Amount:* ₹%.2f\n\n", subtotal)
	writeClosing(&b)

	return b.String()
}

func writeCustomerBlock(b *strings.Builder, name, phone, address string) {
	b.WriteString(divider)
	b.WriteString("*CUSTOMER DETAILS*\n")
	b.WriteString(divider)
	b.WriteString("\n")
	fmt.Fprintf(b, "👤 *Name:* %s\n", name)
	fmt.Fprintf(b, "📱 *Phone:* %s\n", phone)
	fmt.Fprintf(b, "📍 *Address:* %s\n\n", address)
}

func writeClosing(b *strings.Builder) {
	b.WriteString(divider)
	b.WriteString("✅ Please confirm this order and proceed with delivery.\n")
	b.WriteString("Thank you! 🙏")
}
