// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// OrderHandler handles order submission and order history endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store cart.Store, api *commerce.Client, cfg *config.Config, logger *logrus.Logger) *OrderHandler {
	cartService := cart.NewService(store, cfg.Cart.TTL)
	checkoutService := checkout.NewService(store, api, cartService, cfg.Checkout.SessionTTL, logger)
	sender := email.NewService(cfg)
	return &OrderHandler{
		orderService: order.NewService(api, cartService, checkoutService, sender, logger),
		config:       cfg,
	}
}

// SubmitOrder handles POST /checkout/submit
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	credential := middleware.GetCredential(c)

	var req order.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	submission, err := h.orderService.Submit(c.Request.Context(), sessionID, credential, &req)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    submission,
	})
}

// PaymentCallbackRequest represents a confirmed online payment
type PaymentCallbackRequest struct {
	Email       string                      `json:"email" binding:"omitempty,email"`
	Notes       string                      `json:"notes"`
	Transaction commerce.PaymentTransaction `json:"transaction" binding:"required"`
}

// PaymentCallback handles POST /checkout/payment/callback - the deferred
// submission path for online payment methods, invoked once the payment
// provider has confirmed the transaction
func (h *OrderHandler) PaymentCallback(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	credential := middleware.GetCredential(c)

	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	submitReq := &order.SubmitRequest{
		Email:       req.Email,
		Notes:       req.Notes,
		Transaction: &req.Transaction,
	}

	submission, err := h.orderService.Submit(c.Request.Context(), sessionID, credential, submitReq)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    submission,
	})
}

// GetOrders handles GET /client/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	credential := middleware.GetCredential(c)

	orders, err := h.orderService.History(c.Request.Context(), credential)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrderByRef handles GET /client/orders/:ref
func (h *OrderHandler) GetOrderByRef(c *gin.Context) {
	credential := middleware.GetCredential(c)
	ref := c.Param("ref")

	found, err := h.orderService.ByRef(c.Request.Context(), credential, ref)
	if err != nil {
		if commerce.IsClientError(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    found,
	})
}

// renderSubmitError maps submission failures: checkout guard violations,
// rejected payloads and missing payment confirmations are the caller's
// problem; an unavailable commerce API is not
func (h *OrderHandler) renderSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrRejected),
		errors.Is(err, order.ErrPaymentPending),
		isGuardError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, order.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit order",
		})
	}
}
