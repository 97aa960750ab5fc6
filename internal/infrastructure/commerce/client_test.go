// internal/infrastructure/commerce/client_test.go
package commerce

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Commerce: config.CommerceConfig{
			BaseURL:        baseURL,
			Timeout:        5 * time.Second,
			AuthCookieName: "connect.sid",
		},
	}
	return NewClient(cfg, logger)
}

func TestPaymentMethods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/payment-methods", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"label": "Card", "pay_online": true, "require_address": true},
			{"label": "Pay in store", "pay_online": false, "require_address": false}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	methods, err := client.PaymentMethods(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "Card", methods[0].Label)
	assert.True(t, methods[0].PayOnline)
	assert.False(t, methods[1].RequireAddress)
}

func TestCredentialForwardedAsCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("connect.sid")
		require.NoError(t, err)
		assert.Equal(t, "secret-session", cookie.Value)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Addresses(context.Background(), "secret-session")
	require.NoError(t, err)
}

func TestMetadataRequestsCarryNoCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Cookies())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DeliveryOptions(context.Background())
	require.NoError(t, err)
}

func TestErrorTaxonomy(t *testing.T) {
	status := http.StatusUnprocessableEntity
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error": "invalid address"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateOrder(context.Background(), "cred", &CreateOrderRequest{})
	require.Error(t, err)
	assert.True(t, IsClientError(err))
	assert.False(t, IsServerError(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, status, apiErr.StatusCode)
	assert.Equal(t, "invalid address", apiErr.Message)

	status = http.StatusServiceUnavailable
	_, err = client.CreateOrder(context.Background(), "cred", &CreateOrderRequest{})
	require.Error(t, err)
	assert.False(t, IsClientError(err))
	assert.True(t, IsServerError(err))
}

func TestNetworkErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server.URL)

	_, err := client.PickupStores(context.Background())
	require.Error(t, err)
	assert.False(t, IsClientError(err))
	assert.False(t, IsServerError(err))
}

func TestCreateOrderDecodesReceipt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/client/order/postOrderClient", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ref": "ORDER-123"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	receipt, err := client.CreateOrder(context.Background(), "cred", &CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ORDER-123", receipt.Reference)
}
