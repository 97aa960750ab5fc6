// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	config          *config.Config
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(store wishlist.Store, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(store, cfg.Cart.TTL),
		config:          cfg,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	response, err := h.wishlistService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    response,
	})
}

// ToggleProduct handles POST /wishlist/items - the storefront like button
func (h *WishlistHandler) ToggleProduct(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req wishlist.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.wishlistService.Toggle(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist updated successfully",
		"data":    response,
	})
}

// RemoveProduct handles DELETE /wishlist/items/:slug
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	slug := c.Param("slug")

	response, err := h.wishlistService.Remove(c.Request.Context(), sessionID, slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove product from wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from wishlist successfully",
		"data":    response,
	})
}
