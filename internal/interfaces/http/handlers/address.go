// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// AddressHandler proxies the client address book endpoints of the
// commerce API, forwarding the session credential
type AddressHandler struct {
	api    *commerce.Client
	config *config.Config
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(api *commerce.Client, cfg *config.Config) *AddressHandler {
	return &AddressHandler{
		api:    api,
		config: cfg,
	}
}

// GetAddresses handles GET /client/addresses
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	credential := middleware.GetCredential(c)

	addresses, err := h.api.Addresses(c.Request.Context(), credential)
	if err != nil {
		h.renderError(c, err, "Failed to retrieve addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// CreateAddress handles POST /client/addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	credential := middleware.GetCredential(c)

	var req commerce.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address, err := h.api.CreateAddress(c.Request.Context(), credential, &req)
	if err != nil {
		h.renderError(c, err, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    address,
	})
}

// UpdateAddress handles PUT /client/addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	credential := middleware.GetCredential(c)
	addressID := c.Param("id")

	var req commerce.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address, err := h.api.UpdateAddress(c.Request.Context(), credential, addressID, &req)
	if err != nil {
		h.renderError(c, err, "Failed to update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    address,
	})
}

// DeleteAddress handles DELETE /client/addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	credential := middleware.GetCredential(c)
	addressID := c.Param("id")

	if err := h.api.DeleteAddress(c.Request.Context(), credential, addressID); err != nil {
		h.renderError(c, err, "Failed to delete address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}

// renderError forwards upstream 4xx statuses and hides everything else
// behind a generic 502
func (h *AddressHandler) renderError(c *gin.Context, err error, message string) {
	if commerce.IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"error": message,
	})
}
