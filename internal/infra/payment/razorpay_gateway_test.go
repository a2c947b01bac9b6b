package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, baseURL string) *razorpayGateway {
	t.Helper()

	cfg := &config.Config{Payment: &config.PaymentConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
	}}

	gateway, err := NewRazorpayGateway(cfg)
	require.NoError(t, err)

	return gateway.(*razorpayGateway)
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 99900, body["amount"])
		assert.Equal(t, "INR", body["currency"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_abc123",
			"amount":   99900,
			"currency": "INR",
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)

	order, err := gateway.CreateOrder(context.Background(), 99900, "INR", "sub_12345678_1700000000")
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", order.OrderID)
	assert.EqualValues(t, 99900, order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "sub_12345678_1700000000", order.Receipt)
}

func TestRazorpayGateway_CreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)

	_, err := gateway.CreateOrder(context.Background(), 99900, "INR", "receipt")
	assert.Error(t, err)
}

func TestRazorpayGateway_VerifyPayment(t *testing.T) {
	gateway := newTestGateway(t, "http://unused")

	mac := hmac.New(sha256.New, []byte("rzp_test_secret"))
	mac.Write([]byte("order_abc123|pay_def456"))
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, gateway.VerifyPayment("order_abc123", "pay_def456", signature))

	// A signature over different IDs must fail.
	assert.ErrorIs(t, gateway.VerifyPayment("order_other", "pay_def456", signature), ErrSignatureMismatch)
	assert.ErrorIs(t, gateway.VerifyPayment("order_abc123", "pay_def456", "forged"), ErrSignatureMismatch)
}

func TestRazorpayGateway_RequiresCredentials(t *testing.T) {
	_, err := NewRazorpayGateway(&config.Config{})
	assert.Error(t, err)
}
