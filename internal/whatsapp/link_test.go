package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirajd1102/shopping-website/internal/config"
)

func TestNewLinkBuilderNormalizesNumber(t *testing.T) {
	b := NewLinkBuilder(config.WhatsAppConfig{Number: "+91 98765-43210"})
	assert.Equal(t, "919876543210", b.Number())
}

func TestOrderLinkEncodesMessage(t *testing.T) {
	b := NewLinkBuilder(config.WhatsAppConfig{Number: "919876543210"})

	link := b.OrderLink("Hello & welcome\nline two")
	parsed, err := url.Parse(link)
	require.NoError(t, err)

	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/919876543210", parsed.Path)
	assert.Equal(t, "Hello & welcome\nline two", parsed.Query().Get("text"))
}
