// Package payment implements the payment gateway client used for
// subscription upgrades.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"
)

const defaultRequestTimeout = 10 * time.Second

// ErrSignatureMismatch is returned when a payment signature fails HMAC
// verification.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// razorpayGateway implements the service.PaymentGateway interface against the
// Razorpay Orders API.
type razorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewRazorpayGateway is the constructor for razorpayGateway.
func NewRazorpayGateway(cfg *config.Config) (service.PaymentGateway, error) {
	if cfg.Payment == nil || cfg.Payment.KeyID == "" || cfg.Payment.KeySecret == "" {
		return nil, errors.New("payment gateway credentials must be provided")
	}

	timeout := cfg.Payment.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	baseURL := cfg.Payment.BaseURL
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}

	return &razorpayGateway{
		baseURL:   baseURL,
		keyID:     cfg.Payment.KeyID,
		keySecret: cfg.Payment.KeySecret,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway. The returned order ID is
// what the client-side checkout and the later verification both reference.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*service.GatewayOrder, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call payment gateway")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var order createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, errors.Wrap(err, "failed to decode order response")
	}

	return &service.GatewayOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	}, nil
}

// VerifyPayment checks the checkout callback signature: HMAC-SHA256 of
// "<orderID>|<paymentID>" keyed with the gateway secret.
func (g *razorpayGateway) VerifyPayment(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	return nil
}
