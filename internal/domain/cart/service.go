// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/pricing"
)

// Store is the durable key-value storage the cart persists to.
// A missing key is reported as (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service handles cart business logic. The cart is purely local session
// state: no commerce API call happens here, and every mutation persists
// the whole collection before returning.
type Service struct {
	store Store
	ttl   time.Duration
}

// NewService creates a new cart service
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
	}
}

// Response represents a cart snapshot with derived totals
type Response struct {
	SessionID string         `json:"session_id"`
	Items     []Item         `json:"items"`
	Totals    pricing.Totals `json:"totals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Get retrieves the cart for a session. A session without a stored cart
// yields an empty cart with all-zero totals.
func (s *Service) Get(ctx context.Context, sessionID string) (*Response, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sessionCart), nil
}

// AddItem adds an item to the cart. If an entry with the same product id
// exists its quantity is incremented instead.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*Response, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == req.ProductID {
			sessionCart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}

	if !merged {
		sessionCart.Items = append(sessionCart.Items, Item{
			ProductID:   req.ProductID,
			Name:        req.Name,
			Reference:   req.Reference,
			Price:       req.Price,
			Discount:    req.Discount,
			Image:       req.Image,
			Category:    req.Category,
			SubCategory: req.SubCategory,
			Quantity:    req.Quantity,
			AddedAt:     time.Now().UTC(),
		})
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}

	return s.toResponse(sessionCart), nil
}

// UpdateItemQuantity sets the quantity of a cart item. A quantity of zero
// or below removes the entry instead of storing it.
func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Response, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
		} else {
			sessionCart.Items[i].Quantity = quantity
		}
		found = true
		break
	}

	if !found {
		return nil, fmt.Errorf("item not found in cart")
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}

	return s.toResponse(sessionCart), nil
}

// RemoveItem deletes the entry with that product id; removing an absent
// item leaves the cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Response, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			if err := s.save(ctx, sessionCart); err != nil {
				return nil, err
			}
			break
		}
	}

	return s.toResponse(sessionCart), nil
}

// Clear empties the cart, called after a successful order submission
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ItemCount returns the total quantity across all lines, for the header badge
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range sessionCart.Items {
		count += item.Quantity
	}
	return count, nil
}

// Private helper methods

func (s *Service) load(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for cart")
	}

	data, err := s.store.Get(ctx, cartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	if data == nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []Item{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}

	var sessionCart SessionCart
	if err := json.Unmarshal(data, &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &sessionCart, nil
}

func (s *Service) save(ctx context.Context, sessionCart *SessionCart) error {
	sessionCart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.store.Set(ctx, cartKey(sessionCart.SessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

func (s *Service) toResponse(sessionCart *SessionCart) *Response {
	lines := make([]pricing.Line, len(sessionCart.Items))
	for i, item := range sessionCart.Items {
		lines[i] = pricing.Line{
			Price:    item.Price,
			Discount: item.Discount,
			Quantity: item.Quantity,
		}
	}

	return &Response{
		SessionID: sessionCart.SessionID,
		Items:     sessionCart.Items,
		Totals:    pricing.Calculate(lines),
		CreatedAt: sessionCart.CreatedAt,
		UpdatedAt: sessionCart.UpdatedAt,
	}
}

func cartKey(sessionID string) string {
	return "cart:session:" + sessionID
}
