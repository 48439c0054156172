package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/domain"
	"github.com/nirajd1102/shopping-website/internal/orderrecord"
	"github.com/nirajd1102/shopping-website/internal/whatsapp"
	apperrors "github.com/nirajd1102/shopping-website/pkg/errors"
)

// State tracks where a submission attempt is. A failed attempt returns the
// submitter to a state from which Submit can be called again.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Request carries the customer details and cart contents for a checkout.
// TotalPrice is the undiscounted cart total; DiscountAmount is what the
// applied coupon takes off it.
type Request struct {
	CustomerName    string      `json:"customer_name" binding:"required"`
	CustomerPhone   string      `json:"customer_phone" binding:"required"`
	CustomerAddress string      `json:"customer_address" binding:"required"`
	Items           []cart.Line `json:"items"`
	TotalPrice      float64     `json:"total_price"`
	CouponCode      *string     `json:"coupon_code"`
	DiscountAmount  float64     `json:"discount_amount"`
}

// PayableTotal returns the total after the coupon discount
func (r Request) PayableTotal() float64 {
	return r.TotalPrice - r.DiscountAmount
}

// BuyNowRequest is the single-product checkout that bypasses the cart
type BuyNowRequest struct {
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerPhone   string           `json:"customer_phone" binding:"required"`
	CustomerAddress string           `json:"customer_address" binding:"required"`
	Product         cart.ProductInfo `json:"product"`
	SelectedSize    *string          `json:"selected_size"`
	SelectedColor   *string          `json:"selected_color"`
	Quantity        int              `json:"quantity"`
}

// Result is returned on a successful submission. WhatsAppURL is the wa.me
// deep link the caller opens to finish the handoff.
type Result struct {
	WhatsAppURL string `json:"whatsapp_url"`
	Message     string `json:"message"`
}

// Recorder persists an order record after the handoff link is built.
// Recording is best effort; its outcome never affects the submission result.
type Recorder interface {
	Record(ctx context.Context, rec orderrecord.OrderRecord) error
}

const recordTimeout = 15 * time.Second

// Submitter validates checkout requests, formats the WhatsApp order summary
// and hands the order off as a wa.me deep link. The order record is posted in
// the background and its failure is only logged.
type Submitter struct {
	mu       sync.Mutex
	state    State
	links    *whatsapp.LinkBuilder
	recorder Recorder
	logger   *zap.Logger
}

// NewSubmitter creates a checkout submitter. recorder may be nil, in which
// case no order records are posted.
func NewSubmitter(links *whatsapp.LinkBuilder, recorder Recorder, logger *zap.Logger) *Submitter {
	return &Submitter{
		state:    StateIdle,
		links:    links,
		recorder: recorder,
		logger:   logger,
	}
}

// State returns the current submission state
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Submit validates the request, builds the order summary and returns the
// WhatsApp deep link. Success means the link was built; the background order
// record does not gate it.
func (s *Submitter) Submit(ctx context.Context, req Request) (*Result, error) {
	s.setState(StateValidating)

	if err := validateCustomer(req.CustomerName, req.CustomerPhone, req.CustomerAddress); err != nil {
		s.setState(StateFailed)
		return nil, err
	}
	if len(req.Items) == 0 {
		s.setState(StateFailed)
		return nil, &apperrors.ErrValidation{
			Message: "cart is empty",
			Fields:  map[string]string{"items": "at least one item is required"},
		}
	}

	s.setState(StateSubmitting)

	message := FormatOrderMessage(req)
	link := s.links.OrderLink(message)

	s.recordAsync(orderrecord.OrderRecord{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Products:        orderProducts(req.Items),
		TotalAmount:     req.PayableTotal(),
		CouponCode:      req.CouponCode,
		DiscountAmount:  req.DiscountAmount,
		Status:          domain.OrderStatusWhatsAppPending,
	})

	s.setState(StateSucceeded)
	s.logger.Info("Checkout submitted",
		zap.Int("items", len(req.Items)),
		zap.Float64("total", req.PayableTotal()),
	)

	return &Result{WhatsAppURL: link, Message: message}, nil
}

// SubmitBuyNow handles the single-product checkout path
func (s *Submitter) SubmitBuyNow(ctx context.Context, req BuyNowRequest) (*Result, error) {
	s.setState(StateValidating)

	if err := validateCustomer(req.CustomerName, req.CustomerPhone, req.CustomerAddress); err != nil {
		s.setState(StateFailed)
		return nil, err
	}
	if req.Quantity < 1 {
		s.setState(StateFailed)
		return nil, &apperrors.ErrValidation{
			Message: "invalid quantity",
			Fields:  map[string]string{"quantity": "quantity must be at least 1"},
		}
	}
	if req.Product.ProductID == "" {
		s.setState(StateFailed)
		return nil, &apperrors.ErrValidation{
			Message: "missing product",
			Fields:  map[string]string{"product": "product is required"},
		}
	}

	s.setState(StateSubmitting)

	message := FormatBuyNowMessage(req)
	link := s.links.OrderLink(message)
	total := req.Product.UnitPrice * float64(req.Quantity)

	s.recordAsync(orderrecord.OrderRecord{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Products: []domain.OrderProduct{{
			ID:       req.Product.ProductID,
			Name:     req.Product.Name,
			Price:    req.Product.UnitPrice,
			Quantity: req.Quantity,
			Size:     req.SelectedSize,
			Color:    req.SelectedColor,
		}},
		TotalAmount: total,
		Status:      domain.OrderStatusWhatsAppPending,
	})

	s.setState(StateSucceeded)
	s.logger.Info("Buy-now checkout submitted",
		zap.String("product_id", req.Product.ProductID),
		zap.Float64("total", total),
	)

	return &Result{WhatsAppURL: link, Message: message}, nil
}

// recordAsync posts the order record without blocking the submission. The
// request context is not reused: the handoff already happened, so the record
// gets its own deadline.
func (s *Submitter) recordAsync(rec orderrecord.OrderRecord) {
	if s.recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.recorder.Record(ctx, rec); err != nil {
			s.logger.Error("Failed to record order",
				zap.String("customer", rec.CustomerName),
				zap.Float64("total", rec.TotalAmount),
				zap.Error(err),
			)
		}
	}()
}

func validateCustomer(name, phone, address string) error {
	fields := make(map[string]string)

	if len(strings.TrimSpace(name)) < 2 {
		fields["customer_name"] = "name must be at least 2 characters"
	}
	if len(strings.TrimSpace(phone)) < 10 {
		fields["customer_phone"] = "phone number must be at least 10 digits"
	}
	if len(strings.TrimSpace(address)) < 10 {
		fields["customer_address"] = "address must be at least 10 characters"
	}

	if len(fields) > 0 {
		return &apperrors.ErrValidation{
			Message: "invalid customer details",
			Fields:  fields,
		}
	}
	return nil
}

func orderProducts(items []cart.Line) []domain.OrderProduct {
	out := make([]domain.OrderProduct, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderProduct{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
			Size:     item.SelectedSize,
			Color:    item.SelectedColor,
		})
	}
	return out
}
