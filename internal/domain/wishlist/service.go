// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is the durable key-value storage the wishlist persists to.
// A missing key is reported as (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service handles wishlist business logic. The wishlist is independent
// of the cart and of checkout.
type Service struct {
	store Store
	ttl   time.Duration
}

// NewService creates a new wishlist service
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
	}
}

// Response represents a wishlist snapshot
type Response struct {
	SessionID string    `json:"session_id"`
	Products  []Product `json:"products"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get retrieves the wishlist for a session
func (s *Service) Get(ctx context.Context, sessionID string) (*Response, error) {
	list, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toResponse(list), nil
}

// Add adds a product to the wishlist. Adding a slug that is already
// present is a no-op.
func (s *Service) Add(ctx context.Context, sessionID string, req *AddProductRequest) (*Response, error) {
	list, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, p := range list.Products {
		if p.Slug == req.Slug {
			return toResponse(list), nil
		}
	}

	list.Products = append(list.Products, Product{
		Slug:     req.Slug,
		Name:     req.Name,
		Price:    req.Price,
		Image:    req.Image,
		Category: req.Category,
		AddedAt:  time.Now().UTC(),
	})

	if err := s.save(ctx, list); err != nil {
		return nil, err
	}

	return toResponse(list), nil
}

// Remove deletes a product by slug; removing an absent slug leaves the
// wishlist unchanged.
func (s *Service) Remove(ctx context.Context, sessionID, slug string) (*Response, error) {
	list, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range list.Products {
		if list.Products[i].Slug == slug {
			list.Products = append(list.Products[:i], list.Products[i+1:]...)
			if err := s.save(ctx, list); err != nil {
				return nil, err
			}
			break
		}
	}

	return toResponse(list), nil
}

// Toggle adds the product when absent and removes it when present,
// matching the storefront's like button
func (s *Service) Toggle(ctx context.Context, sessionID string, req *AddProductRequest) (*Response, error) {
	list, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range list.Products {
		if list.Products[i].Slug == req.Slug {
			list.Products = append(list.Products[:i], list.Products[i+1:]...)
			if err := s.save(ctx, list); err != nil {
				return nil, err
			}
			return toResponse(list), nil
		}
	}

	return s.Add(ctx, sessionID, req)
}

// Private helper methods

func (s *Service) load(ctx context.Context, sessionID string) (*SessionWishlist, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for wishlist")
	}

	data, err := s.store.Get(ctx, wishlistKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	if data == nil {
		now := time.Now().UTC()
		return &SessionWishlist{
			SessionID: sessionID,
			Products:  []Product{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}

	var list SessionWishlist
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}

	return &list, nil
}

func (s *Service) save(ctx context.Context, list *SessionWishlist) error {
	list.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}

	if err := s.store.Set(ctx, wishlistKey(list.SessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}

	return nil
}

func toResponse(list *SessionWishlist) *Response {
	return &Response{
		SessionID: list.SessionID,
		Products:  list.Products,
		Count:     len(list.Products),
		UpdatedAt: list.UpdatedAt,
	}
}

func wishlistKey(sessionID string) string {
	return "wishlist:session:" + sessionID
}
