// internal/domain/checkout/rules_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

func TestDeliveryAllowed(t *testing.T) {
	tests := []struct {
		name    string
		payment SelectedPayment
		pickup  bool
		want    bool
	}{
		{"online with address sees shipped", SelectedPayment{PayOnline: true, RequireAddress: true}, false, true},
		{"online with address sees pickup", SelectedPayment{PayOnline: true, RequireAddress: true}, true, true},
		{"offline with address sees shipped", SelectedPayment{PayOnline: false, RequireAddress: true}, false, true},
		{"offline with address hides pickup", SelectedPayment{PayOnline: false, RequireAddress: true}, true, false},
		{"no address hides shipped", SelectedPayment{PayOnline: false, RequireAddress: false}, false, false},
		{"no address sees pickup", SelectedPayment{PayOnline: false, RequireAddress: false}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := commerce.DeliveryOption{Pickup: tt.pickup}
			assert.Equal(t, tt.want, DeliveryAllowed(tt.payment, opt))
		})
	}
}

func TestVisibleDeliveryOptions(t *testing.T) {
	options := []commerce.DeliveryOption{shippedOption, pickupOption}

	// no payment method selected yet
	assert.Empty(t, VisibleDeliveryOptions(nil, options))

	visible := VisibleDeliveryOptions(&SelectedPayment{PayOnline: true, RequireAddress: true}, options)
	assert.Len(t, visible, 2)

	visible = VisibleDeliveryOptions(&SelectedPayment{RequireAddress: true}, options)
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "std", visible[0].ID)
	}

	visible = VisibleDeliveryOptions(&SelectedPayment{}, options)
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "pickup", visible[0].ID)
	}
}
