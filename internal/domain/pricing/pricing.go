// internal/domain/pricing/pricing.go
package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line represents one priced cart line
type Line struct {
	Price    decimal.Decimal // unit price before discount
	Discount int64           // percent, 0-100
	Quantity int
}

// Totals represents the derived cart totals
type Totals struct {
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Savings       decimal.Decimal `json:"savings"`
}

// UnitPrice returns the per-unit price after the percentage discount,
// rounded to two decimal places
func UnitPrice(price decimal.Decimal, discount int64) decimal.Decimal {
	if discount <= 0 {
		return price.Round(2)
	}
	factor := decimal.NewFromInt(100 - discount).Div(hundred)
	return price.Mul(factor).Round(2)
}

// LineTotal returns the discounted unit price multiplied by quantity
func LineTotal(price decimal.Decimal, discount int64, quantity int) decimal.Decimal {
	return UnitPrice(price, discount).Mul(decimal.NewFromInt(int64(quantity)))
}

// LineSavings returns the amount saved on a line compared to its
// undiscounted total
func LineSavings(price decimal.Decimal, discount int64, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	return price.Mul(qty).Sub(LineTotal(price, discount, quantity))
}

// Calculate derives the cart totals from its lines. An empty cart
// yields all-zero totals.
func Calculate(lines []Line) Totals {
	totals := Totals{
		ItemCount: len(lines),
		Subtotal:  decimal.Zero,
		Savings:   decimal.Zero,
	}

	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.Subtotal = totals.Subtotal.Add(LineTotal(line.Price, line.Discount, line.Quantity))
		totals.Savings = totals.Savings.Add(LineSavings(line.Price, line.Discount, line.Quantity))
	}

	return totals
}

// GrandTotal returns the subtotal plus the selected delivery cost.
// A zero delivery cost stands for "no delivery selected yet".
func GrandTotal(subtotal, deliveryCost decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryCost).Round(2)
}
