// internal/infrastructure/commerce/client.go
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// APIError represents a non-2xx response from the commerce API
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("commerce api: %d", e.StatusCode)
}

// IsClientError reports whether err is a commerce API 4xx response
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

// IsServerError reports whether err is a commerce API 5xx response
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// Client is the HTTP client for the external commerce API
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new commerce API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Commerce.BaseURL, "/"),
		cookieName: cfg.Commerce.AuthCookieName,
		httpClient: &http.Client{
			Timeout: cfg.Commerce.Timeout,
		},
		logger: logger,
	}
}

// PaymentMethods retrieves the available payment methods
func (c *Client) PaymentMethods(ctx context.Context) ([]PaymentMethodMeta, error) {
	var methods []PaymentMethodMeta
	if err := c.do(ctx, http.MethodGet, "/checkout/payment-methods", "", nil, &methods); err != nil {
		return nil, fmt.Errorf("failed to fetch payment methods: %w", err)
	}
	return methods, nil
}

// DeliveryOptions retrieves the available delivery options
func (c *Client) DeliveryOptions(ctx context.Context) ([]DeliveryOption, error) {
	var options []DeliveryOption
	if err := c.do(ctx, http.MethodGet, "/checkout/delivery-options", "", nil, &options); err != nil {
		return nil, fmt.Errorf("failed to fetch delivery options: %w", err)
	}
	return options, nil
}

// PickupStores retrieves the stores eligible as pickup points
func (c *Client) PickupStores(ctx context.Context) ([]PickupStore, error) {
	var stores []PickupStore
	if err := c.do(ctx, http.MethodGet, "/checkout/Magasin-options", "", nil, &stores); err != nil {
		return nil, fmt.Errorf("failed to fetch pickup stores: %w", err)
	}
	return stores, nil
}

// Addresses retrieves the authenticated client's saved addresses
func (c *Client) Addresses(ctx context.Context, credential string) ([]Address, error) {
	var addresses []Address
	if err := c.do(ctx, http.MethodGet, "/client/address/getAddress", credential, nil, &addresses); err != nil {
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress creates a new address for the authenticated client
func (c *Client) CreateAddress(ctx context.Context, credential string, req *AddressRequest) (*Address, error) {
	var address Address
	if err := c.do(ctx, http.MethodPost, "/client/address/postAddress", credential, req, &address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &address, nil
}

// UpdateAddress updates an existing address
func (c *Client) UpdateAddress(ctx context.Context, credential, addressID string, req *AddressRequest) (*Address, error) {
	var address Address
	path := "/client/address/updateAddress/" + addressID
	if err := c.do(ctx, http.MethodPut, path, credential, req, &address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

// DeleteAddress deletes an address
func (c *Client) DeleteAddress(ctx context.Context, credential, addressID string) error {
	path := "/client/address/deleteAddress/" + addressID
	if err := c.do(ctx, http.MethodDelete, path, credential, nil, nil); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

// CreateOrder submits an order-creation request
func (c *Client) CreateOrder(ctx context.Context, credential string, req *CreateOrderRequest) (*OrderReceipt, error) {
	var receipt OrderReceipt
	if err := c.do(ctx, http.MethodPost, "/client/order/postOrderClient", credential, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// OrderByRef retrieves a single order by its reference
func (c *Client) OrderByRef(ctx context.Context, credential, ref string) (*Order, error) {
	var order Order
	path := "/client/order/getOrderByRef/" + ref
	if err := c.do(ctx, http.MethodGet, path, credential, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", ref, err)
	}
	return &order, nil
}

// OrdersByClient retrieves the authenticated client's order history
func (c *Client) OrdersByClient(ctx context.Context, credential string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/client/order/getOrdersByClient", credential, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// do performs one request against the commerce API. Authenticated endpoints
// receive the session cookie the storefront forwarded; non-2xx responses are
// returned as *APIError so callers can branch on 4xx vs 5xx.
func (c *Client) do(ctx context.Context, method, path, credential string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: credential})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("Commerce API request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// readErrorMessage extracts an error message from an upstream error body
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return strings.TrimSpace(string(data))
}
