package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	number := newOrderNumber(at)
	assert.Regexp(t, `^ORD-20240315093045-[0-9a-f]{8}$`, number)
}

func TestNewOrderNumberUniquePerSecond(t *testing.T) {
	at := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := newOrderNumber(at)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
