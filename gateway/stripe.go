package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// StripeGateway charges cards through Stripe. The API key lives on the
// client instance, not in package-level state.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// Charge submits a card authorization and returns the gateway's charge id.
// Gateway errors are returned as-is so callers can surface the provider
// message.
func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountMinor),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.Token); err != nil {
		return "", err
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}
