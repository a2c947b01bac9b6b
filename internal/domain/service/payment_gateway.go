package service

import "context"

// GatewayOrder is the provider-side order created before the client
// completes checkout. Amount is in paise.
type GatewayOrder struct {
	OrderID  string
	Amount   int64
	Currency string
	Receipt  string
}

// PaymentGateway defines the interface for the external payment provider.
// Verification is signature-based: the provider signs "<orderID>|<paymentID>"
// with the key secret and the client echoes the signature back.
type PaymentGateway interface {
	// CreateOrder registers a payment order with the provider and returns
	// its identifier for client-side checkout.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error)

	// VerifyPayment checks the callback signature against the order and
	// payment identifiers. A nil return means the payment is authentic.
	VerifyPayment(orderID, paymentID, signature string) error
}
