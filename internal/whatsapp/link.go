package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nirajd1102/shopping-website/internal/config"
)

// LinkBuilder builds wa.me deep links that open a chat with the shop's
// WhatsApp number and a prefilled message. Opening the link is the order
// handoff; there is no delivery confirmation.
type LinkBuilder struct {
	number string
}

// NewLinkBuilder creates a link builder for the configured shop number
func NewLinkBuilder(cfg config.WhatsAppConfig) *LinkBuilder {
	// Normalize - keep digits only, wa.me rejects formatted numbers
	var b strings.Builder
	for _, r := range cfg.Number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return &LinkBuilder{number: b.String()}
}

// OrderLink returns the deep link carrying the URL-encoded message text
func (b *LinkBuilder) OrderLink(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.number, url.QueryEscape(message))
}

// Number returns the normalized destination number
func (b *LinkBuilder) Number() string {
	return b.number
}
