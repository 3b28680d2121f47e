package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPClient(logger.NewSlogLogger(logger.EnvLocal), config.GatewayConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	})
}

func TestCreatePaymentLink(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment-links", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Amount      decimal.Decimal `json:"amount"`
			Currency    string          `json:"currency"`
			Description string          `json:"description"`
			ReturnURL   string          `json:"return_url"`
			CancelURL   string          `json:"cancel_url"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.True(t, req.Amount.Equal(decimal.RequireFromString("121.00")))
		require.Equal(t, "USD", req.Currency)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"transaction_id": "txn_123",
			"checkout_url":   "https://pay.example/txn_123",
		})
	})

	link, err := client.CreatePaymentLink(
		context.Background(),
		decimal.RequireFromString("121.00"),
		"USD",
		"payment for order",
		"https://shop.example/return",
		"https://shop.example/cancel",
	)
	require.NoError(t, err)
	require.Equal(t, "txn_123", link.TransactionID)
	require.Equal(t, "https://pay.example/txn_123", link.CheckoutURL)
}

func TestCreatePaymentLinkProviderError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CreatePaymentLink(context.Background(), decimal.RequireFromString("10.00"), "USD", "", "", "")
	require.Error(t, err)
}

func TestCancel(t *testing.T) {
	var path string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.Cancel(context.Background(), "txn_123"))
	require.Equal(t, "/v1/payment-links/txn_123/cancel", path)
}

func TestStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payment-links/txn_123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
	})

	status, err := client.Status(context.Background(), "txn_123")
	require.NoError(t, err)
	require.Equal(t, "completed", status)
}
