package catalog

import (
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAveragePrice(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: decimal.RequireFromString("10.00")},
		{ID: 2, Price: decimal.RequireFromString("20.00")},
		{ID: 3, Price: decimal.RequireFromString("30.00")},
	}

	avg := averagePrice(products)
	assert.True(t, avg.Equal(decimal.RequireFromString("20")), "got %s", avg)
}

func TestAveragePriceEmptySubtree(t *testing.T) {
	avg := averagePrice(nil)
	assert.True(t, avg.Equal(decimal.Zero), "got %s", avg)
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "books-movies", makeSlug("Books & Movies"))
	assert.Equal(t, "electronics", makeSlug("Electronics"))
	assert.Equal(t, "home-garden-tools", makeSlug("Home, Garden  & Tools"))
}
