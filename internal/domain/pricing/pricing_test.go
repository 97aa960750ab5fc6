// internal/domain/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount int64
		want     string
	}{
		{"no discount", "100", 0, "100"},
		{"negative discount ignored", "100", -5, "100"},
		{"twenty percent", "100", 20, "80"},
		{"rounds to two decimals", "19.99", 15, "16.99"},
		{"full discount", "50", 100, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			got := UnitPrice(price, tt.discount)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestLineTotalAndSavings(t *testing.T) {
	price := decimal.NewFromInt(100)

	total := LineTotal(price, 20, 3)
	assert.Equal(t, "240.00", total.StringFixed(2))

	savings := LineSavings(price, 20, 3)
	assert.Equal(t, "60.00", savings.StringFixed(2))
}

func TestCalculate(t *testing.T) {
	lines := []Line{
		{Price: decimal.NewFromInt(100), Discount: 20, Quantity: 3},
		{Price: decimal.RequireFromString("19.99"), Discount: 0, Quantity: 2},
	}

	totals := Calculate(lines)

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 5, totals.TotalQuantity)
	assert.Equal(t, "279.98", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "60.00", totals.Savings.StringFixed(2))
}

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(nil)

	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0, totals.TotalQuantity)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Savings.IsZero())
}

func TestGrandTotal(t *testing.T) {
	subtotal := decimal.NewFromInt(100)
	delivery := decimal.NewFromInt(7)

	assert.Equal(t, "107.00", GrandTotal(subtotal, delivery).StringFixed(2))
	assert.Equal(t, "100.00", GrandTotal(subtotal, decimal.Zero).StringFixed(2))
}
