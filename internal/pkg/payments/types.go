package payments

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned for an unknown or inactive product slug. The
// processor is never contacted in that case.
var ErrProductNotFound = errors.New("payments: product not found")

// ErrNotConfigured is returned when a product has no processor price ID.
var ErrNotConfigured = errors.New("payments: product has no stripe price id")

// CheckoutSession is the hand-off result: the hosted payment page the
// browser should be redirected to.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutParams describes one checkout session request to the processor.
type CheckoutParams struct {
	PriceID       string
	Recurring     bool
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutClient isolates the processor SDK so the service can be exercised
// with a fake in tests.
type CheckoutClient interface {
	CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}
