// internal/domain/order/entity.go
package order

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

// Submission outcome errors. ErrRejected maps upstream 4xx responses,
// ErrUnavailable maps 5xx and network failures; in both cases the cart
// is left untouched so a resubmission is safe.
var (
	ErrRejected       = errors.New("order was rejected, check your information")
	ErrUnavailable    = errors.New("order service unavailable, try again later")
	ErrPaymentPending = errors.New("online payment has not been confirmed yet")
)

// SubmitRequest represents the order submission body
type SubmitRequest struct {
	Email       string                       `json:"email" binding:"omitempty,email"`
	Notes       string                       `json:"notes"`
	Transaction *commerce.PaymentTransaction `json:"transaction,omitempty"`
}

// Submission represents a confirmed order submission
type Submission struct {
	Reference     string          `json:"reference"`
	Step          checkout.Step   `json:"step"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
}
