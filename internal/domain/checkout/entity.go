// internal/domain/checkout/entity.go
package checkout

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

// Step represents the checkout phase
type Step string

const (
	StepCart         Step = "cart"
	StepCheckout     Step = "checkout"
	StepOrderSummary Step = "order-summary"
)

// Guard errors returned by session transitions
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotInCheckout        = errors.New("checkout has not been started")
	ErrNoPaymentMethod      = errors.New("no payment method selected")
	ErrNoDeliveryMethod     = errors.New("no delivery method selected")
	ErrIncompatibleDelivery = errors.New("delivery method not compatible with payment method")
	ErrAddressNotApplicable = errors.New("selected delivery method does not ship to an address")
	ErrPickupNotApplicable  = errors.New("selected delivery method is not in-store pickup")
	ErrNoFulfillmentTarget  = errors.New("no address or pickup store selected")
	ErrSessionCompleted     = errors.New("checkout session already completed")
	ErrUnknownSelection     = errors.New("unknown selection")
)

// SelectedPayment is the snapshot of the chosen payment method. The two
// flags are kept on the session because they gate every later delivery
// selection.
type SelectedPayment struct {
	Label          string `json:"label"`
	PayOnline      bool   `json:"pay_online"`
	RequireAddress bool   `json:"require_address"`
}

// SelectedDelivery is the snapshot of the chosen delivery method
type SelectedDelivery struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Cost   decimal.Decimal `json:"cost"`
	Pickup bool            `json:"pickup"`
}

// SelectedMagasin is the snapshot of the chosen pickup store
type SelectedMagasin struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Session holds the state of one checkout. It is ephemeral: created fresh
// when checkout is entered and discarded once the summary step is reached.
type Session struct {
	SessionID      string            `json:"session_id"`
	Step           Step              `json:"step"`
	Payment        *SelectedPayment  `json:"payment,omitempty"`
	Delivery       *SelectedDelivery `json:"delivery,omitempty"`
	AddressID      string            `json:"address_id,omitempty"`
	AddressDisplay string            `json:"address_display,omitempty"`
	Magasin        *SelectedMagasin  `json:"magasin,omitempty"`
	OrderReference string            `json:"order_reference,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewSession creates a fresh session at the cart step
func NewSession(sessionID string) *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID: sessionID,
		Step:      StepCart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeginCheckout moves cart -> checkout, guarded on a non-empty cart
func (s *Session) BeginCheckout(cartItemCount int) error {
	if s.Step == StepOrderSummary {
		return ErrSessionCompleted
	}
	if cartItemCount < 1 {
		return ErrEmptyCart
	}
	s.Step = StepCheckout
	return nil
}

// BackToCart moves checkout -> cart. The summary step is terminal.
func (s *Session) BackToCart() error {
	if s.Step == StepOrderSummary {
		return ErrSessionCompleted
	}
	s.Step = StepCart
	return nil
}

// SelectPayment records the payment method and resets every downstream
// selection: the new method's rules may invalidate the previous delivery
// method, address and pickup store.
func (s *Session) SelectPayment(meta commerce.PaymentMethodMeta) error {
	if s.Step != StepCheckout {
		return ErrNotInCheckout
	}
	s.Payment = &SelectedPayment{
		Label:          meta.Label,
		PayOnline:      meta.PayOnline,
		RequireAddress: meta.RequireAddress,
	}
	s.Delivery = nil
	s.AddressID = ""
	s.AddressDisplay = ""
	s.Magasin = nil
	return nil
}

// SelectDelivery records the delivery method, validated against the
// payment method's visibility rules, and clears whichever fulfillment
// target no longer applies.
func (s *Session) SelectDelivery(opt commerce.DeliveryOption) error {
	if s.Step != StepCheckout {
		return ErrNotInCheckout
	}
	if s.Payment == nil {
		return ErrNoPaymentMethod
	}
	if !DeliveryAllowed(*s.Payment, opt) {
		return ErrIncompatibleDelivery
	}

	s.Delivery = &SelectedDelivery{
		ID:     opt.ID,
		Name:   opt.Name,
		Cost:   opt.Cost,
		Pickup: opt.Pickup,
	}
	if opt.Pickup {
		s.AddressID = ""
		s.AddressDisplay = ""
	} else {
		s.Magasin = nil
	}
	return nil
}

// SelectAddress records the shipping address for a non-pickup delivery
func (s *Session) SelectAddress(addr commerce.Address) error {
	if s.Step != StepCheckout {
		return ErrNotInCheckout
	}
	if s.Delivery == nil {
		return ErrNoDeliveryMethod
	}
	if s.Delivery.Pickup {
		return ErrAddressNotApplicable
	}
	s.AddressID = addr.ID
	s.AddressDisplay = addr.DisplayString()
	return nil
}

// SelectMagasin records the pickup store for a pickup delivery
func (s *Session) SelectMagasin(store commerce.PickupStore) error {
	if s.Step != StepCheckout {
		return ErrNotInCheckout
	}
	if s.Delivery == nil {
		return ErrNoDeliveryMethod
	}
	if !s.Delivery.Pickup {
		return ErrPickupNotApplicable
	}
	s.Magasin = &SelectedMagasin{
		ID:      store.ID,
		Name:    store.Name,
		City:    store.City,
		Address: store.Address,
		Phone:   store.Phone,
	}
	return nil
}

// CanSubmit reports whether all selections required for order submission
// are in place, returning the first unmet guard
func (s *Session) CanSubmit() error {
	if s.Step != StepCheckout {
		return ErrNotInCheckout
	}
	if s.Payment == nil {
		return ErrNoPaymentMethod
	}
	if s.Delivery == nil {
		return ErrNoDeliveryMethod
	}
	if s.Delivery.Pickup {
		if s.Magasin == nil {
			return ErrNoFulfillmentTarget
		}
	} else if s.AddressID == "" {
		return ErrNoFulfillmentTarget
	}
	return nil
}

// Complete moves the session to its terminal step with the order reference
func (s *Session) Complete(reference string) {
	s.Step = StepOrderSummary
	s.OrderReference = reference
}

// DeliveryCost returns the selected delivery cost, zero when none is
// selected yet
func (s *Session) DeliveryCost() decimal.Decimal {
	if s.Delivery == nil {
		return decimal.Zero
	}
	return s.Delivery.Cost
}
