package orderrecord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/domain"
)

// OrderRecord is the structured payload posted to the order-recording
// endpoint after a checkout handoff.
type OrderRecord struct {
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	Products        []domain.OrderProduct `json:"products"`
	TotalAmount     float64               `json:"total_amount"`
	CouponCode      *string               `json:"coupon_code,omitempty"`
	DiscountAmount  float64               `json:"discount_amount"`
	Status          domain.OrderStatus    `json:"status"`
}

// Client posts order records over HTTP. Recording is best-effort telemetry:
// the circuit breaker keeps a dead endpoint from stalling every checkout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a new order-recording client
func NewClient(cfg config.OrderRecordConfig, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "order-record",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Order record breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: breaker,
		logger:  logger,
	}
}

// Record posts one order record. An empty base URL disables recording.
func (c *Client) Record(ctx context.Context, rec OrderRecord) error {
	if c.baseURL == "" {
		c.logger.Debug("Order recording disabled, ORDER_RECORD_URL not set")
		return nil
	}

	if rec.Status == "" {
		rec.Status = domain.OrderStatusWhatsAppPending
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.post(ctx, rec)
	})
	return err
}

func (c *Client) post(ctx context.Context, rec OrderRecord) error {
	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	url := c.baseURL + "/api/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("order record API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}
