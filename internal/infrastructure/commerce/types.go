// internal/infrastructure/commerce/types.go
package commerce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodMeta represents an available payment method and the flags
// that gate which delivery options may be combined with it
type PaymentMethodMeta struct {
	Label          string `json:"label"`
	Help           string `json:"help,omitempty"`
	PayOnline      bool   `json:"pay_online"`
	RequireAddress bool   `json:"require_address"`
}

// DeliveryOption represents a delivery method offered by the commerce API
type DeliveryOption struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	Pickup      bool            `json:"pickup"`
}

// PickupStore represents a physical store eligible as a collection point
type PickupStore struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Address represents a saved client address
type Address struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

// DisplayString returns the address as a single comma-joined line,
// skipping empty fields
func (a *Address) DisplayString() string {
	parts := []string{a.Name, a.Street, a.City, a.Province, a.PostalCode, a.Country}
	filled := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			filled = append(filled, part)
		}
	}
	return strings.Join(filled, ", ")
}

// AddressRequest represents address creation/update data sent upstream
type AddressRequest struct {
	Name       string `json:"name" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// OrderLine represents one cart line inside an order-creation request
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  int64           `json:"discount"`
}

// PaymentTransaction carries the online-payment provider confirmation
// attached to a deferred submission
type PaymentTransaction struct {
	Provider      string `json:"provider"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status,omitempty"`
}

// CreateOrderRequest represents the order-creation payload
type CreateOrderRequest struct {
	AddressID      string              `json:"address_id,omitempty"`
	MagasinID      string              `json:"magasin_id,omitempty"`
	PaymentMethod  string              `json:"payment_method"`
	DeliveryMethod string              `json:"delivery_method"`
	DeliveryCost   decimal.Decimal     `json:"delivery_cost"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	Items          []OrderLine         `json:"items"`
	Transaction    *PaymentTransaction `json:"transaction,omitempty"`
}

// OrderReceipt represents the order-creation response
type OrderReceipt struct {
	Reference string `json:"ref"`
}

// Order represents an order as returned by the history/summary endpoints
type Order struct {
	Reference      string          `json:"ref"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryMethod string          `json:"delivery_method"`
	DeliveryCost   decimal.Decimal `json:"delivery_cost"`
	DiscountTotal  decimal.Decimal `json:"discount_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Items          []OrderLine     `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
}
