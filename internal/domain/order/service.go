// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/pricing"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// OrderAPI is the slice of the commerce API the submission consumes
type OrderAPI interface {
	CreateOrder(ctx context.Context, credential string, req *commerce.CreateOrderRequest) (*commerce.OrderReceipt, error)
	OrderByRef(ctx context.Context, credential, ref string) (*commerce.Order, error)
	OrdersByClient(ctx context.Context, credential string) ([]commerce.Order, error)
}

// ConfirmationSender sends the best-effort order confirmation email
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationData) error
}

// Service handles order submission business logic
type Service struct {
	api             OrderAPI
	cartService     *cart.Service
	checkoutService *checkout.Service
	email           ConfirmationSender
	logger          *logrus.Logger
}

// NewService creates a new order service
func NewService(api OrderAPI, cartService *cart.Service, checkoutService *checkout.Service, sender ConfirmationSender, logger *logrus.Logger) *Service {
	return &Service{
		api:             api,
		cartService:     cartService,
		checkoutService: checkoutService,
		email:           sender,
		logger:          logger,
	}
}

// Submit packages the cart and checkout selections into an order-creation
// request. The cart is cleared and the step machine advanced only after
// the commerce API confirmed the order; any failure leaves both intact so
// a retry cannot double-order.
//
// A payment method flagged as pay-online defers submission until the
// provider callback supplies transaction details in the request.
func (s *Service) Submit(ctx context.Context, sessionID, credential string, req *SubmitRequest) (*Submission, error) {
	cartResponse, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	view, err := s.checkoutService.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	session := view.Session

	if err := session.CanSubmit(); err != nil {
		return nil, err
	}

	if session.Payment.PayOnline && req.Transaction == nil {
		return nil, ErrPaymentPending
	}

	grandTotal := pricing.GrandTotal(cartResponse.Totals.Subtotal, session.DeliveryCost())

	payload := &commerce.CreateOrderRequest{
		AddressID:      session.AddressID,
		PaymentMethod:  session.Payment.Label,
		DeliveryMethod: session.Delivery.Name,
		DeliveryCost:   session.Delivery.Cost,
		DiscountTotal:  cartResponse.Totals.Savings,
		GrandTotal:     grandTotal,
		Items:          buildOrderLines(cartResponse.Items),
		Transaction:    req.Transaction,
	}
	if session.Magasin != nil {
		payload.MagasinID = session.Magasin.ID
	}

	receipt, err := s.api.CreateOrder(ctx, credential, payload)
	if err != nil {
		if commerce.IsClientError(err) {
			s.logger.WithError(err).Warn("Order submission rejected by commerce API")
			return nil, ErrRejected
		}
		s.logger.WithError(err).Error("Order submission failed")
		return nil, ErrUnavailable
	}

	// Order is confirmed from here on: the confirmation email is
	// best-effort and must never fail the submission.
	if req.Email != "" {
		s.sendConfirmation(ctx, req.Email, receipt.Reference, session, cartResponse, grandTotal)
	}

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		s.logger.WithError(err).Error("Failed to clear cart after order creation")
	}

	completed, err := s.checkoutService.CompleteOrder(ctx, sessionID, receipt.Reference)
	if err != nil {
		s.logger.WithError(err).Error("Failed to advance checkout session after order creation")
		return &Submission{
			Reference:     receipt.Reference,
			Step:          checkout.StepOrderSummary,
			GrandTotal:    grandTotal,
			DiscountTotal: cartResponse.Totals.Savings,
		}, nil
	}

	return &Submission{
		Reference:     receipt.Reference,
		Step:          completed.Step,
		GrandTotal:    grandTotal,
		DiscountTotal: cartResponse.Totals.Savings,
	}, nil
}

// ByRef retrieves a single order for the summary page
func (s *Service) ByRef(ctx context.Context, credential, ref string) (*commerce.Order, error) {
	return s.api.OrderByRef(ctx, credential, ref)
}

// History retrieves the client's order history
func (s *Service) History(ctx context.Context, credential string) ([]commerce.Order, error) {
	return s.api.OrdersByClient(ctx, credential)
}

// Private helper methods

func (s *Service) sendConfirmation(ctx context.Context, userEmail, reference string, session *checkout.Session, cartResponse *cart.Response, grandTotal decimal.Decimal) {
	lines := make([]email.OrderConfirmationLine, len(cartResponse.Items))
	for i, item := range cartResponse.Items {
		unit := pricing.UnitPrice(item.Price, item.Discount)
		lines[i] = email.OrderConfirmationLine{
			Name:      item.Name,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			UnitPrice: unit.StringFixed(2),
			Total:     pricing.LineTotal(item.Price, item.Discount, item.Quantity).StringFixed(2),
		}
	}

	target := session.AddressDisplay
	if session.Magasin != nil {
		target = fmt.Sprintf("%s, %s, %s", session.Magasin.Name, session.Magasin.Address, session.Magasin.City)
	}

	data := email.OrderConfirmationData{
		UserEmail:      userEmail,
		OrderReference: reference,
		PaymentMethod:  session.Payment.Label,
		DeliveryMethod: session.Delivery.Name,
		DeliveryTarget: target,
		GrandTotal:     grandTotal.StringFixed(2),
		Items:          lines,
	}

	if err := s.email.SendOrderConfirmation(ctx, data); err != nil {
		s.logger.WithError(err).WithField("order_reference", reference).
			Warn("Order confirmation email failed")
	}
}

func buildOrderLines(items []cart.Item) []commerce.OrderLine {
	lines := make([]commerce.OrderLine, len(items))
	for i, item := range items {
		lines[i] = commerce.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Reference: item.Reference,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Discount:  item.Discount,
		}
	}
	return lines
}
