package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	lines := []CartLine{
		{
			CartItem:    CartItem{ProductID: 1, Quantity: 2},
			ProductName: "Laptop",
			UnitPrice:   decimal.RequireFromString("1200.00"),
		},
		{
			CartItem:    CartItem{ProductID: 2, Quantity: 5},
			ProductName: "Mouse",
			UnitPrice:   decimal.RequireFromString("25.00"),
		},
	}

	assert.Equal(t, 7, CartTotalItems(lines))

	total := CartTotalPrice(lines)
	assert.True(t, total.Equal(decimal.RequireFromString("2525.00")), "got %s", total)

	assert.True(t, lines[0].Subtotal().Equal(decimal.RequireFromString("2400.00")))
	assert.True(t, lines[1].Subtotal().Equal(decimal.RequireFromString("125.00")))
}

func TestCartTotalsEmpty(t *testing.T) {
	assert.Equal(t, 0, CartTotalItems(nil))
	assert.True(t, CartTotalPrice(nil).Equal(decimal.Zero))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))
}
