package payments

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/env"
)

// Service opens checkout sessions and records the matching pending orders.
// Orders are only ever completed by the webhook, never here.
type Service struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	client   CheckoutClient
}

func NewService(products repository.ProductRepository, orders repository.OrderRepository, client CheckoutClient) *Service {
	return &Service{products: products, orders: orders, client: client}
}

// CreateCheckoutSession resolves the product slug, opens a processor session
// and records a pending order. Unknown or inactive slugs fail before the
// processor is contacted.
func (s *Service) CreateCheckoutSession(ctx context.Context, slug, email string) (*CheckoutSession, error) {
	product, err := s.products.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("payments: load product %q: %w", slug, err)
	}
	if !product.IsActive() {
		return nil, ErrProductNotFound
	}
	if product.StripePriceID == "" {
		return nil, ErrNotConfigured
	}

	base := env.AppURL()
	session, err := s.client.CreateSession(ctx, CheckoutParams{
		PriceID:       product.StripePriceID,
		Recurring:     product.IsRecurring(),
		CustomerEmail: email,
		SuccessURL:    base + "/products/" + product.Slug + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + "/products/" + product.Slug + "?canceled=true",
		Metadata: map[string]string{
			"product_slug": product.Slug,
		},
	})
	if err != nil {
		// Raw processor error text stays on the error for the admin
		// diagnostic surface.
		return nil, fmt.Errorf("payments: create session for %q: %w", slug, err)
	}

	order := &models.Order{
		OrderNumber:     models.NewOrderNumber(),
		ProductID:       product.ID,
		Email:           email,
		Amount:          product.Price,
		Currency:        product.Currency,
		Status:          models.OrderStatusPending,
		StripeSessionID: session.SessionID,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("payments: record pending order: %w", err)
	}

	return session, nil
}

// CreateCheckoutSessionForPrice opens a session for a raw processor price ID
// without a local product row. No order is recorded; reconciliation happens
// entirely through the webhook.
func (s *Service) CreateCheckoutSessionForPrice(ctx context.Context, priceID, email string, recurring bool) (*CheckoutSession, error) {
	if priceID == "" {
		return nil, ErrNotConfigured
	}

	base := env.AppURL()
	return s.client.CreateSession(ctx, CheckoutParams{
		PriceID:       priceID,
		Recurring:     recurring,
		CustomerEmail: email,
		SuccessURL:    base + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + "/checkout/cancel",
	})
}
