package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/shauncritzer/rewired/internal/pkg/env"
)

// StripeClient implements CheckoutClient against the Stripe API.
type StripeClient struct{}

// NewStripeClientFromEnv configures the global Stripe key and returns a
// client. An empty STRIPE_SECRET_KEY leaves the client unusable; every call
// reports the missing configuration instead of panicking.
func NewStripeClientFromEnv() *StripeClient {
	stripe.Key = strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", ""))
	return &StripeClient{}
}

// CreateSession opens a hosted checkout session for the given price.
func (c *StripeClient) CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if stripe.Key == "" {
		return nil, errors.New("payments: STRIPE_SECRET_KEY is not configured")
	}
	if strings.TrimSpace(params.PriceID) == "" {
		return nil, ErrNotConfigured
	}

	mode := stripe.CheckoutSessionModePayment
	if params.Recurring {
		mode = stripe.CheckoutSessionModeSubscription
	}

	p := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	p.Context = ctx
	if params.CustomerEmail != "" {
		p.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}

	s, err := session.New(p)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
}
