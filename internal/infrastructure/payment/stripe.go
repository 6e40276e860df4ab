// Package payment creates payment intents with Stripe.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
)

type Stripe struct {
	api *client.API
}

// NewStripe builds a gateway for secretKey. backends may be nil to use the
// live Stripe endpoints.
func NewStripe(secretKey string, backends *stripe.Backends) *Stripe {
	return &Stripe{api: client.New(secretKey, backends)}
}

func (s *Stripe) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (gateway.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return gateway.PaymentIntent{}, fmt.Errorf("create payment intent: %w", err)
	}
	return gateway.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

var _ gateway.PaymentGateway = (*Stripe)(nil)
