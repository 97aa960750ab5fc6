// internal/domain/checkout/entity_test.go
package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

var (
	payOnlineShipped = commerce.PaymentMethodMeta{
		Label:          "Card",
		PayOnline:      true,
		RequireAddress: true,
	}
	payOnDelivery = commerce.PaymentMethodMeta{
		Label:          "Cash on delivery",
		PayOnline:      false,
		RequireAddress: true,
	}
	payInStore = commerce.PaymentMethodMeta{
		Label:          "Pay in store",
		PayOnline:      false,
		RequireAddress: false,
	}

	shippedOption = commerce.DeliveryOption{
		ID:     "std",
		Name:   "Standard",
		Cost:   decimal.NewFromInt(7),
		Pickup: false,
	}
	pickupOption = commerce.DeliveryOption{
		ID:     "pickup",
		Name:   "In-store pickup",
		Cost:   decimal.Zero,
		Pickup: true,
	}

	homeAddress = commerce.Address{
		ID:     "addr1",
		Name:   "Home",
		Street: "1 Main St",
		City:   "Lyon",
	}
	downtownStore = commerce.PickupStore{
		ID:   "mag1",
		Name: "Downtown",
		City: "Lyon",
	}
)

func TestBeginCheckoutRequiresItems(t *testing.T) {
	session := NewSession("sess1")

	assert.ErrorIs(t, session.BeginCheckout(0), ErrEmptyCart)
	assert.Equal(t, StepCart, session.Step)

	require.NoError(t, session.BeginCheckout(2))
	assert.Equal(t, StepCheckout, session.Step)
}

func TestBackToCart(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))

	require.NoError(t, session.BackToCart())
	assert.Equal(t, StepCart, session.Step)
}

func TestSummaryStepIsTerminal(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))
	session.Complete("ORDER-123")

	assert.ErrorIs(t, session.BeginCheckout(1), ErrSessionCompleted)
	assert.ErrorIs(t, session.BackToCart(), ErrSessionCompleted)
	assert.ErrorIs(t, session.SelectPayment(payOnDelivery), ErrNotInCheckout)
	assert.Equal(t, "ORDER-123", session.OrderReference)
}

func TestSelectPaymentResetsDownstreamSelections(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))

	require.NoError(t, session.SelectPayment(payOnDelivery))
	require.NoError(t, session.SelectDelivery(shippedOption))
	require.NoError(t, session.SelectAddress(homeAddress))

	require.NoError(t, session.SelectPayment(payInStore))

	assert.Nil(t, session.Delivery)
	assert.Empty(t, session.AddressID)
	assert.Empty(t, session.AddressDisplay)
	assert.Nil(t, session.Magasin)
}

func TestSelectPaymentRequiresCheckoutStep(t *testing.T) {
	session := NewSession("sess1")

	assert.ErrorIs(t, session.SelectPayment(payOnDelivery), ErrNotInCheckout)
}

func TestSelectDeliveryGuards(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))

	assert.ErrorIs(t, session.SelectDelivery(shippedOption), ErrNoPaymentMethod)

	require.NoError(t, session.SelectPayment(payInStore))
	assert.ErrorIs(t, session.SelectDelivery(shippedOption), ErrIncompatibleDelivery)
	require.NoError(t, session.SelectDelivery(pickupOption))
}

func TestSelectDeliveryClearsIrrelevantTarget(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))
	require.NoError(t, session.SelectPayment(payOnlineShipped))

	require.NoError(t, session.SelectDelivery(shippedOption))
	require.NoError(t, session.SelectAddress(homeAddress))

	// switching to pickup drops the address
	require.NoError(t, session.SelectDelivery(pickupOption))
	assert.Empty(t, session.AddressID)
	require.NoError(t, session.SelectMagasin(downtownStore))

	// switching back to shipped drops the store
	require.NoError(t, session.SelectDelivery(shippedOption))
	assert.Nil(t, session.Magasin)
}

func TestSelectAddressGuards(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))
	require.NoError(t, session.SelectPayment(payInStore))

	assert.ErrorIs(t, session.SelectAddress(homeAddress), ErrNoDeliveryMethod)

	require.NoError(t, session.SelectDelivery(pickupOption))
	assert.ErrorIs(t, session.SelectAddress(homeAddress), ErrAddressNotApplicable)
}

func TestSelectMagasinGuards(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))
	require.NoError(t, session.SelectPayment(payOnDelivery))

	assert.ErrorIs(t, session.SelectMagasin(downtownStore), ErrNoDeliveryMethod)

	require.NoError(t, session.SelectDelivery(shippedOption))
	assert.ErrorIs(t, session.SelectMagasin(downtownStore), ErrPickupNotApplicable)
}

func TestCanSubmit(t *testing.T) {
	session := NewSession("sess1")
	assert.ErrorIs(t, session.CanSubmit(), ErrNotInCheckout)

	require.NoError(t, session.BeginCheckout(1))
	assert.ErrorIs(t, session.CanSubmit(), ErrNoPaymentMethod)

	require.NoError(t, session.SelectPayment(payOnDelivery))
	assert.ErrorIs(t, session.CanSubmit(), ErrNoDeliveryMethod)

	require.NoError(t, session.SelectDelivery(shippedOption))
	assert.ErrorIs(t, session.CanSubmit(), ErrNoFulfillmentTarget)

	require.NoError(t, session.SelectAddress(homeAddress))
	assert.NoError(t, session.CanSubmit())
}

func TestCanSubmitPickupNeedsMagasin(t *testing.T) {
	session := NewSession("sess1")
	require.NoError(t, session.BeginCheckout(1))
	require.NoError(t, session.SelectPayment(payInStore))
	require.NoError(t, session.SelectDelivery(pickupOption))

	assert.ErrorIs(t, session.CanSubmit(), ErrNoFulfillmentTarget)

	require.NoError(t, session.SelectMagasin(downtownStore))
	assert.NoError(t, session.CanSubmit())
}

func TestDeliveryCost(t *testing.T) {
	session := NewSession("sess1")
	assert.True(t, session.DeliveryCost().IsZero())

	require.NoError(t, session.BeginCheckout(1))
	require.NoError(t, session.SelectPayment(payOnDelivery))
	require.NoError(t, session.SelectDelivery(shippedOption))
	assert.Equal(t, "7.00", session.DeliveryCost().StringFixed(2))
}
