// internal/domain/checkout/rules.go
package checkout

import (
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

// DeliveryAllowed is the payment/delivery compatibility table.
// A method that requires an address and is paid online can use any
// delivery option; one that requires an address but is paid offline is
// limited to shipped delivery; one that does not require an address
// (paid in store) is limited to pickup.
func DeliveryAllowed(payment SelectedPayment, opt commerce.DeliveryOption) bool {
	switch {
	case payment.RequireAddress && payment.PayOnline:
		return true
	case payment.RequireAddress:
		return !opt.Pickup
	default:
		return opt.Pickup
	}
}

// VisibleDeliveryOptions filters the delivery options down to the subset
// compatible with the given payment method. Recomputed on every payment
// change, never stored.
func VisibleDeliveryOptions(payment *SelectedPayment, options []commerce.DeliveryOption) []commerce.DeliveryOption {
	if payment == nil {
		return []commerce.DeliveryOption{}
	}

	visible := make([]commerce.DeliveryOption, 0, len(options))
	for _, opt := range options {
		if DeliveryAllowed(*payment, opt) {
			visible = append(visible, opt)
		}
	}
	return visible
}
