package gateway

import "context"

// ChargeRequest describes a card authorization for an order total, expressed
// in minor currency units.
type ChargeRequest struct {
	AmountMinor int64
	Currency    string
	Description string
	Token       string
}

// CardGateway authorizes card charges with an external processor.
type CardGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (string, error)
}

// PayPalVerifier reconciles a client-side PayPal confirmation against the
// provider. Implemented by PayPalClient.
type PayPalVerifier interface {
	Simulated() bool
	Configured() bool
	GetOrder(ctx context.Context, orderID string) (*PayPalOrder, error)
}
