package notify

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmail struct {
	sent []string
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, phone, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

func testEvent() *models.OrderPlacedEvent {
	return &models.OrderPlacedEvent{
		OrderNumber:   "ORD-20240315093045-deadbeef",
		UserID:        7,
		CustomerEmail: "buyer@example.com",
		PhoneNumber:   "+254700000001",
		TotalPrice:    decimal.RequireFromString("2525.00"),
	}
}

func TestNotifyOrderPlaced(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{}
	d := NewDispatcher(email, sms, "admin@example.com", "Storefront")

	err := d.NotifyOrderPlaced(context.Background(), testEvent())
	require.NoError(t, err)

	assert.Equal(t, []string{"buyer@example.com", "admin@example.com"}, email.sent)
	assert.Equal(t, []string{"+254700000001"}, sms.sent)
}

func TestNotifyOrderPlacedSwallowsFailures(t *testing.T) {
	email := &fakeEmail{err: errors.New("smtp down")}
	sms := &fakeSMS{err: errors.New("gateway down")}
	d := NewDispatcher(email, sms, "admin@example.com", "Storefront")

	// Delivery failures must never propagate to the checkout path.
	err := d.NotifyOrderPlaced(context.Background(), testEvent())
	assert.NoError(t, err)
}

func TestNotifyOrderPlacedWithoutSMSProvider(t *testing.T) {
	email := &fakeEmail{}
	d := NewDispatcher(email, nil, "admin@example.com", "Storefront")

	err := d.NotifyOrderPlaced(context.Background(), testEvent())
	require.NoError(t, err)
	assert.Equal(t, []string{"buyer@example.com", "admin@example.com"}, email.sent)
}
