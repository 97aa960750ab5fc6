// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout metadata and step machine endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(store cart.Store, api *commerce.Client, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	cartService := cart.NewService(store, cfg.Cart.TTL)
	return &CheckoutHandler{
		checkoutService: checkout.NewService(store, api, cartService, cfg.Checkout.SessionTTL, logger),
		config:          cfg,
	}
}

// GetMetadata handles GET /checkout/metadata - payment methods and
// delivery options fetched concurrently; either list may be empty when
// its fetch failed
func (h *CheckoutHandler) GetMetadata(c *gin.Context) {
	meta := h.checkoutService.Metadata(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout metadata retrieved successfully",
		"data":    meta,
	})
}

// GetPaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(c *gin.Context) {
	meta := h.checkoutService.Metadata(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    meta.PaymentMethods,
	})
}

// GetDeliveryOptions handles GET /checkout/delivery-options
func (h *CheckoutHandler) GetDeliveryOptions(c *gin.Context) {
	meta := h.checkoutService.Metadata(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery options retrieved successfully",
		"data":    meta.DeliveryOptions,
	})
}

// GetMagasinOptions handles GET /checkout/magasin-options
func (h *CheckoutHandler) GetMagasinOptions(c *gin.Context) {
	stores := h.checkoutService.PickupStores(c.Request.Context(), c.Query("search"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Pickup stores retrieved successfully",
		"data":    stores,
	})
}

// GetSession handles GET /checkout/session
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := h.checkoutService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session retrieved successfully",
		"data":    view,
	})
}

// BeginCheckout handles POST /checkout/session
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := h.checkoutService.BeginCheckout(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started successfully",
		"data":    view,
	})
}

// BackToCart handles POST /checkout/session/back
func (h *CheckoutHandler) BackToCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	view, err := h.checkoutService.BackToCart(c.Request.Context(), sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Returned to cart",
		"data":    view,
	})
}

// ResetSession handles DELETE /checkout/session
func (h *CheckoutHandler) ResetSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.checkoutService.Reset(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session reset successfully",
	})
}

// SelectPaymentMethodRequest represents payment method selection
type SelectPaymentMethodRequest struct {
	Label string `json:"label" binding:"required"`
}

// SelectPaymentMethod handles PUT /checkout/session/payment-method
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.checkoutService.SelectPaymentMethod(c.Request.Context(), sessionID, req.Label)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method selected successfully",
		"data":    view,
	})
}

// SelectDeliveryMethodRequest represents delivery method selection
type SelectDeliveryMethodRequest struct {
	ID string `json:"id" binding:"required"`
}

// SelectDeliveryMethod handles PUT /checkout/session/delivery-method
func (h *CheckoutHandler) SelectDeliveryMethod(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req SelectDeliveryMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.checkoutService.SelectDeliveryMethod(c.Request.Context(), sessionID, req.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery method selected successfully",
		"data":    view,
	})
}

// SelectAddressRequest represents address selection
type SelectAddressRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

// SelectAddress handles PUT /checkout/session/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	credential := middleware.GetCredential(c)

	var req SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.checkoutService.SelectAddress(c.Request.Context(), sessionID, credential, req.AddressID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address selected successfully",
		"data":    view,
	})
}

// SelectMagasinRequest represents pickup store selection
type SelectMagasinRequest struct {
	MagasinID string `json:"magasin_id" binding:"required"`
}

// SelectMagasin handles PUT /checkout/session/magasin
func (h *CheckoutHandler) SelectMagasin(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req SelectMagasinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.checkoutService.SelectMagasin(c.Request.Context(), sessionID, req.MagasinID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pickup store selected successfully",
		"data":    view,
	})
}

// renderError maps step machine guard violations to 400s and everything
// else to a 500
func (h *CheckoutHandler) renderError(c *gin.Context, err error) {
	if isGuardError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}

// isGuardError reports whether err is a checkout step machine guard violation
func isGuardError(err error) bool {
	for _, guard := range []error{
		checkout.ErrEmptyCart,
		checkout.ErrNotInCheckout,
		checkout.ErrNoPaymentMethod,
		checkout.ErrNoDeliveryMethod,
		checkout.ErrIncompatibleDelivery,
		checkout.ErrAddressNotApplicable,
		checkout.ErrPickupNotApplicable,
		checkout.ErrNoFulfillmentTarget,
		checkout.ErrSessionCompleted,
		checkout.ErrUnknownSelection,
	} {
		if errors.Is(err, guard) {
			return true
		}
	}
	return false
}
