// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents one line of the session cart, denormalized for display
type Item struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Reference   string          `json:"reference,omitempty"`
	Price       decimal.Decimal `json:"price"`    // unit price before discount
	Discount    int64           `json:"discount"` // percent, 0-100
	Image       string          `json:"image,omitempty"`
	Category    string          `json:"category,omitempty"`
	SubCategory string          `json:"sub_category,omitempty"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"added_at"`
}

// SessionCart represents the persisted cart for one storefront session
type SessionCart struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Reference   string          `json:"reference"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    int64           `json:"discount" binding:"min=0,max=100"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	SubCategory string          `json:"sub_category"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// UpdateItemQuantityRequest represents update cart item request.
// A quantity of zero or below removes the item.
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}
