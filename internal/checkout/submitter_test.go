package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/orderrecord"
	"github.com/nirajd1102/shopping-website/internal/whatsapp"
	apperrors "github.com/nirajd1102/shopping-website/pkg/errors"
)

type stubRecorder struct {
	records chan orderrecord.OrderRecord
	err     error
}

func newStubRecorder(err error) *stubRecorder {
	return &stubRecorder{records: make(chan orderrecord.OrderRecord, 1), err: err}
}

func (r *stubRecorder) Record(ctx context.Context, rec orderrecord.OrderRecord) error {
	r.records <- rec
	return r.err
}

func strPtr(s string) *string { return &s }

func newTestSubmitter(recorder Recorder) *Submitter {
	links := whatsapp.NewLinkBuilder(config.WhatsAppConfig{Number: "919876543210"})
	return NewSubmitter(links, recorder, zap.NewNop())
}

func validRequest() Request {
	return Request{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Items: []cart.Line{
			{ProductID: "p1", Name: "Embroidered Kurta", UnitPrice: 500, Quantity: 2, SelectedSize: strPtr("M")},
		},
		TotalPrice: 1000,
	}
}

func TestSubmitReturnsWhatsAppLink(t *testing.T) {
	s := newTestSubmitter(nil)

	res, err := s.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Contains(t, res.WhatsAppURL, "https://wa.me/919876543210?text=")
	assert.Contains(t, res.Message, "Embroidered Kurta")
	assert.Equal(t, StateSucceeded, s.State())
}

func TestSubmitRejectsShortName(t *testing.T) {
	s := newTestSubmitter(nil)
	req := validRequest()
	req.CustomerName = "P"

	_, err := s.Submit(context.Background(), req)
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_name")
	assert.Equal(t, StateFailed, s.State())
}

func TestSubmitPhoneLengthBoundary(t *testing.T) {
	s := newTestSubmitter(nil)

	req := validRequest()
	req.CustomerPhone = "987654321" // 9 digits
	_, err := s.Submit(context.Background(), req)
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_phone")

	req.CustomerPhone = "9876543210" // 10 digits
	_, err = s.Submit(context.Background(), req)
	assert.NoError(t, err)
}

func TestSubmitRejectsShortAddress(t *testing.T) {
	s := newTestSubmitter(nil)
	req := validRequest()
	req.CustomerAddress = "short"

	_, err := s.Submit(context.Background(), req)
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_address")
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	s := newTestSubmitter(nil)
	req := validRequest()
	req.Items = nil

	_, err := s.Submit(context.Background(), req)
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")
}

func TestSubmitCollectsAllFieldErrors(t *testing.T) {
	s := newTestSubmitter(nil)
	req := validRequest()
	req.CustomerName = "X"
	req.CustomerPhone = "123"
	req.CustomerAddress = "nowhere"

	_, err := s.Submit(context.Background(), req)
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestSubmitRecordsOrderInBackground(t *testing.T) {
	recorder := newStubRecorder(nil)
	s := newTestSubmitter(recorder)

	_, err := s.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case rec := <-recorder.records:
		assert.Equal(t, "Priya Sharma", rec.CustomerName)
		assert.Equal(t, 1000.0, rec.TotalAmount)
		require.Len(t, rec.Products, 1)
		assert.Equal(t, "p1", rec.Products[0].ID)
		assert.Equal(t, 2, rec.Products[0].Quantity)
	case <-time.After(2 * time.Second):
		t.Fatal("order was never recorded")
	}
}

func TestSubmitRecordsCouponAndDiscountedTotal(t *testing.T) {
	recorder := newStubRecorder(nil)
	s := newTestSubmitter(recorder)

	req := validRequest()
	req.CouponCode = strPtr("FESTIVE10")
	req.DiscountAmount = 100

	_, err := s.Submit(context.Background(), req)
	require.NoError(t, err)

	select {
	case rec := <-recorder.records:
		require.NotNil(t, rec.CouponCode)
		assert.Equal(t, "FESTIVE10", *rec.CouponCode)
		assert.Equal(t, 100.0, rec.DiscountAmount)
		assert.Equal(t, 900.0, rec.TotalAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("order was never recorded")
	}
}

func TestSubmitSucceedsWhenRecorderFails(t *testing.T) {
	recorder := newStubRecorder(errors.New("endpoint down"))
	s := newTestSubmitter(recorder)

	res, err := s.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.WhatsAppURL)

	select {
	case <-recorder.records:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder was never called")
	}
	assert.Equal(t, StateSucceeded, s.State())
}

func TestSubmitIsReenterableAfterFailure(t *testing.T) {
	s := newTestSubmitter(nil)

	req := validRequest()
	req.CustomerName = ""
	_, err := s.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	res, err := s.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.WhatsAppURL)
}

func TestSubmitBuyNow(t *testing.T) {
	recorder := newStubRecorder(nil)
	s := newTestSubmitter(recorder)

	res, err := s.SubmitBuyNow(context.Background(), BuyNowRequest{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Product: cart.ProductInfo{
			ProductID: "p1",
			Name:      "Embroidered Kurta",
			UnitPrice: 500,
		},
		SelectedSize: strPtr("L"),
		Quantity:     3,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Embroidered Kurta")

	select {
	case rec := <-recorder.records:
		assert.Equal(t, 1500.0, rec.TotalAmount)
		require.Len(t, rec.Products, 1)
		assert.Equal(t, "L", *rec.Products[0].Size)
	case <-time.After(2 * time.Second):
		t.Fatal("order was never recorded")
	}
}

func TestSubmitBuyNowRejectsZeroQuantity(t *testing.T) {
	s := newTestSubmitter(nil)

	_, err := s.SubmitBuyNow(context.Background(), BuyNowRequest{
		CustomerName:    "Priya Sharma",
		CustomerPhone:   "9876543210",
		CustomerAddress: "42 MG Road, Bengaluru",
		Product:         cart.ProductInfo{ProductID: "p1", Name: "Kurta", UnitPrice: 500},
		Quantity:        0,
	})
	var verr *apperrors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
}
