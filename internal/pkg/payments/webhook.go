package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/env"
	"github.com/shauncritzer/rewired/internal/pkg/gate"
)

// SubscriberTagger tags a purchase in the email marketing platform. Failures
// are logged, never fatal to webhook processing.
type SubscriberTagger interface {
	TagPurchase(ctx context.Context, email, productSlug string) error
}

// WebhookProcessor verifies, dedupes and applies processor webhook events.
type WebhookProcessor struct {
	events       repository.PaymentEventRepository
	orders       repository.OrderRepository
	entitlements *gate.Service
	tagger       SubscriberTagger
	secret       string
}

func NewWebhookProcessor(
	events repository.PaymentEventRepository,
	orders repository.OrderRepository,
	entitlements *gate.Service,
	tagger SubscriberTagger,
) *WebhookProcessor {
	return &WebhookProcessor{
		events:       events,
		orders:       orders,
		entitlements: entitlements,
		tagger:       tagger,
		secret:       strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
	}
}

// ErrInvalidSignature is returned when the payload does not match the
// webhook signing secret.
var ErrInvalidSignature = errors.New("payments: invalid webhook signature")

// Handle verifies the signature, stores the event exactly once and applies
// it. A redelivered event ID is acknowledged without reprocessing.
func (p *WebhookProcessor) Handle(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.secret)
	if err != nil {
		return ErrInvalidSignature
	}

	stored := &models.PaymentEvent{
		EventType:      string(event.Type),
		StripeEventID:  event.ID,
		Payload:        string(payload),
		SignatureValid: true,
	}
	inserted, err := p.events.InsertIfAbsent(stored)
	if err != nil {
		return err
	}
	if !inserted {
		log.Printf("webhook event %s already seen, skipping", event.ID)
		return nil
	}

	if err := p.apply(ctx, &event, stored); err != nil {
		if mErr := p.events.MarkFailed(stored.ID, err.Error()); mErr != nil {
			log.Printf("failed to record processing error for webhook event %s: %v", event.ID, mErr)
		}
		return err
	}

	return p.events.MarkProcessed(stored.ID)
}

func (p *WebhookProcessor) apply(ctx context.Context, event *stripe.Event, stored *models.PaymentEvent) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return p.completeCheckout(ctx, &session, stored)
	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}
		if invoice.CustomerEmail != "" {
			return p.entitlements.GrantEntitlement(invoice.CustomerEmail, gate.TierPurchased)
		}
		return nil
	default:
		log.Printf("ignoring webhook event %s (%s)", event.ID, event.Type)
		return nil
	}
}

func (p *WebhookProcessor) completeCheckout(ctx context.Context, session *stripe.CheckoutSession, stored *models.PaymentEvent) error {
	email := ""
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}
	if email == "" {
		email = session.CustomerEmail
	}

	productSlug := ""
	if session.Metadata != nil {
		productSlug = session.Metadata["product_slug"]
	}

	order, err := p.orders.GetBySessionID(session.ID)
	switch {
	case err == nil:
		paymentIntentID := ""
		if session.PaymentIntent != nil {
			paymentIntentID = session.PaymentIntent.ID
		}
		if err := p.orders.MarkCompleted(order.ID, paymentIntentID); err != nil {
			return err
		}
		stored.OrderID = &order.ID
		if email == "" {
			email = order.Email
		}
		if productSlug == "" {
			productSlug = order.Product.Slug
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Sessions opened by raw price ID have no local order to complete.
		log.Printf("no local order for checkout session %s", session.ID)
	default:
		return err
	}

	if email == "" {
		log.Printf("completed checkout session %s carries no customer email", session.ID)
		return nil
	}

	if err := p.entitlements.GrantEntitlement(email, gate.TierPurchased); err != nil {
		return err
	}

	if p.tagger != nil && productSlug != "" {
		if err := p.tagger.TagPurchase(ctx, email, productSlug); err != nil {
			log.Printf("failed to tag purchase for %s: %v", email, err)
		}
	}

	return nil
}
