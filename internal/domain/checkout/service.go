// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

// MetadataAPI is the slice of the commerce API the checkout consumes
type MetadataAPI interface {
	PaymentMethods(ctx context.Context) ([]commerce.PaymentMethodMeta, error)
	DeliveryOptions(ctx context.Context) ([]commerce.DeliveryOption, error)
	PickupStores(ctx context.Context) ([]commerce.PickupStore, error)
	Addresses(ctx context.Context, credential string) ([]commerce.Address, error)
}

// Store is the key-value storage the checkout session persists to.
// A missing key is reported as (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service handles checkout business logic
type Service struct {
	store       Store
	api         MetadataAPI
	cartService *cart.Service
	ttl         time.Duration
	logger      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(store Store, api MetadataAPI, cartService *cart.Service, ttl time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		api:         api,
		cartService: cartService,
		ttl:         ttl,
		logger:      logger,
	}
}

// Metadata bundles the fetched payment methods and delivery options.
// A list stays empty when its fetch failed; checkout remains navigable
// but cannot complete until data arrives on a retry.
type Metadata struct {
	PaymentMethods  []commerce.PaymentMethodMeta `json:"payment_methods"`
	DeliveryOptions []commerce.DeliveryOption    `json:"delivery_options"`
}

// SessionView is the session plus the delivery subset currently visible
// under its selected payment method
type SessionView struct {
	Session         *Session                  `json:"session"`
	VisibleDelivery []commerce.DeliveryOption `json:"visible_delivery_options"`
}

// Metadata fetches payment methods and delivery options concurrently.
// Either fetch failing degrades that resource to an empty list rather
// than blocking the page.
func (s *Service) Metadata(ctx context.Context) *Metadata {
	meta := &Metadata{
		PaymentMethods:  []commerce.PaymentMethodMeta{},
		DeliveryOptions: []commerce.DeliveryOption{},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		methods, err := s.api.PaymentMethods(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Payment methods unavailable")
			return
		}
		meta.PaymentMethods = methods
	}()

	go func() {
		defer wg.Done()
		options, err := s.api.DeliveryOptions(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Delivery options unavailable")
			return
		}
		sort.SliceStable(options, func(i, j int) bool {
			return options[i].Cost.LessThan(options[j].Cost)
		})
		meta.DeliveryOptions = options
	}()

	wg.Wait()
	return meta
}

// PickupStores fetches the pickup stores, optionally filtered by a
// search term matched against name and city. A failed fetch degrades
// to an empty list.
func (s *Service) PickupStores(ctx context.Context, search string) []commerce.PickupStore {
	stores, err := s.api.PickupStores(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Pickup stores unavailable")
		return []commerce.PickupStore{}
	}

	if search == "" {
		return stores
	}

	needle := strings.ToLower(search)
	filtered := make([]commerce.PickupStore, 0, len(stores))
	for _, store := range stores {
		if strings.Contains(strings.ToLower(store.Name), needle) ||
			strings.Contains(strings.ToLower(store.City), needle) {
			filtered = append(filtered, store)
		}
	}
	return filtered
}

// GetSession retrieves the checkout session for a storefront session,
// creating a fresh one at the cart step when none exists
func (s *Service) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// BeginCheckout transitions cart -> checkout, guarded on a non-empty
// cart. A session already at the summary step is replaced by a fresh one
// before the transition.
func (s *Service) BeginCheckout(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step == StepOrderSummary {
		session = NewSession(sessionID)
	}

	count, err := s.cartService.ItemCount(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	if err := session.BeginCheckout(count); err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// BackToCart transitions checkout -> cart
func (s *Service) BackToCart(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.BackToCart(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// SelectPaymentMethod resolves the payment method by label and records
// it on the session, resetting the delivery, address and pickup choices
func (s *Service) SelectPaymentMethod(ctx context.Context, sessionID, label string) (*SessionView, error) {
	methods, err := s.api.PaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment methods unavailable: %w", err)
	}

	var selected *commerce.PaymentMethodMeta
	for i := range methods {
		if methods[i].Label == label {
			selected = &methods[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: payment method %q", ErrUnknownSelection, label)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectPayment(*selected); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// SelectDeliveryMethod resolves the delivery option by id and records it
// on the session, validated against the payment method's rules
func (s *Service) SelectDeliveryMethod(ctx context.Context, sessionID, optionID string) (*SessionView, error) {
	options, err := s.api.DeliveryOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("delivery options unavailable: %w", err)
	}

	var selected *commerce.DeliveryOption
	for i := range options {
		if options[i].ID == optionID {
			selected = &options[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: delivery method %q", ErrUnknownSelection, optionID)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectDelivery(*selected); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// SelectAddress resolves a saved address by id against the client's
// address book and records it on the session
func (s *Service) SelectAddress(ctx context.Context, sessionID, credential, addressID string) (*SessionView, error) {
	addresses, err := s.api.Addresses(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("addresses unavailable: %w", err)
	}

	var selected *commerce.Address
	for i := range addresses {
		if addresses[i].ID == addressID {
			selected = &addresses[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: address %q", ErrUnknownSelection, addressID)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectAddress(*selected); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// SelectMagasin resolves a pickup store by id and records it on the session
func (s *Service) SelectMagasin(ctx context.Context, sessionID, magasinID string) (*SessionView, error) {
	stores, err := s.api.PickupStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("pickup stores unavailable: %w", err)
	}

	var selected *commerce.PickupStore
	for i := range stores {
		if stores[i].ID == magasinID {
			selected = &stores[i]
			break
		}
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: pickup store %q", ErrUnknownSelection, magasinID)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectMagasin(*selected); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// CompleteOrder advances the session to its terminal summary step.
// Called by order submission after the commerce API confirmed the order.
func (s *Service) CompleteOrder(ctx context.Context, sessionID, reference string) (*Session, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Complete(reference)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Reset discards the checkout session, e.g. when the user navigates away
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to reset checkout session: %w", err)
	}
	return nil
}

// Private helper methods

func (s *Service) load(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for checkout")
	}

	data, err := s.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if data == nil {
		return NewSession(sessionID), nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return &session, nil
}

func (s *Service) save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode checkout session: %w", err)
	}

	if err := s.store.Set(ctx, sessionKey(session.SessionID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to persist checkout session: %w", err)
	}

	return nil
}

func (s *Service) view(ctx context.Context, session *Session) *SessionView {
	view := &SessionView{
		Session:         session,
		VisibleDelivery: []commerce.DeliveryOption{},
	}

	if session.Payment == nil {
		return view
	}

	options, err := s.api.DeliveryOptions(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Delivery options unavailable")
		return view
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost.LessThan(options[j].Cost)
	})

	view.VisibleDelivery = VisibleDeliveryOptions(session.Payment, options)
	return view
}

func sessionKey(sessionID string) string {
	return "checkout:session:" + sessionID
}
