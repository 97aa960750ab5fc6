// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category holds the denormalized category labels shown on wishlist cards
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product represents a liked product, identified by its slug
type Product struct {
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Category Category        `json:"category"`
	AddedAt  time.Time       `json:"added_at"`
}

// SessionWishlist represents the persisted wishlist for one session
type SessionWishlist struct {
	SessionID string    `json:"session_id"`
	Products  []Product `json:"products"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddProductRequest represents add to wishlist request
type AddProductRequest struct {
	Slug     string          `json:"slug" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category Category        `json:"category"`
}
