// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, kv *redis.KV, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(kv, cfg)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItemQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupWishlistRoutes sets up wishlist related routes
func SetupWishlistRoutes(rg *gin.RouterGroup, kv *redis.KV, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(kv, cfg)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/items", wishlistHandler.ToggleProduct)
		wishlist.DELETE("/items/:slug", wishlistHandler.RemoveProduct)
	}
}

// SetupCheckoutRoutes sets up checkout metadata, step machine and order
// submission routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, kv *redis.KV, api *commerce.Client, cfg *config.Config, logger *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(kv, api, cfg, logger)
	orderHandler := handlers.NewOrderHandler(kv, api, cfg, logger)

	checkout := rg.Group("/checkout")
	{
		// Metadata endpoints are public to the session
		checkout.GET("/metadata", checkoutHandler.GetMetadata)
		checkout.GET("/payment-methods", checkoutHandler.GetPaymentMethods)
		checkout.GET("/delivery-options", checkoutHandler.GetDeliveryOptions)
		checkout.GET("/magasin-options", checkoutHandler.GetMagasinOptions)

		// Step machine endpoints
		checkout.GET("/session", checkoutHandler.GetSession)
		checkout.POST("/session", checkoutHandler.BeginCheckout)
		checkout.POST("/session/back", checkoutHandler.BackToCart)
		checkout.DELETE("/session", checkoutHandler.ResetSession)
		checkout.PUT("/session/payment-method", checkoutHandler.SelectPaymentMethod)
		checkout.PUT("/session/delivery-method", checkoutHandler.SelectDeliveryMethod)
		checkout.PUT("/session/magasin", checkoutHandler.SelectMagasin)

		// Endpoints forwarding the client credential upstream
		protected := checkout.Group("")
		protected.Use(middleware.RequireClientAuth(cfg))
		{
			protected.PUT("/session/address", checkoutHandler.SelectAddress)
			protected.POST("/submit", orderHandler.SubmitOrder)
			protected.POST("/payment/callback", orderHandler.PaymentCallback)
		}
	}
}

// SetupClientRoutes sets up the address book and order history routes
// proxied to the commerce API
func SetupClientRoutes(rg *gin.RouterGroup, kv *redis.KV, api *commerce.Client, cfg *config.Config, logger *logrus.Logger) {
	addressHandler := handlers.NewAddressHandler(api, cfg)
	orderHandler := handlers.NewOrderHandler(kv, api, cfg, logger)

	client := rg.Group("/client")
	client.Use(middleware.RequireClientAuth(cfg))
	{
		client.GET("/addresses", addressHandler.GetAddresses)
		client.POST("/addresses", addressHandler.CreateAddress)
		client.PUT("/addresses/:id", addressHandler.UpdateAddress)
		client.DELETE("/addresses/:id", addressHandler.DeleteAddress)

		client.GET("/orders", orderHandler.GetOrders)
		client.GET("/orders/:ref", orderHandler.GetOrderByRef)
	}
}
