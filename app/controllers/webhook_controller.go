package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/convertkit"
	"github.com/shauncritzer/rewired/internal/pkg/gate"
	"github.com/shauncritzer/rewired/internal/pkg/payments"
)

var webhookProcessor *payments.WebhookProcessor

// InitializeWebhookController wires the Stripe webhook processor. Called
// once during router setup.
func InitializeWebhookController() {
	repos := repository.GetGlobalRepositories()
	webhookProcessor = payments.NewWebhookProcessor(
		repos.PaymentEvent,
		repos.Order,
		gate.NewService(repos.CoachUser, repos.Order),
		convertkit.NewPurchaseTagger(convertkit.NewClientFromEnv(), repos.Product),
	)
}

// HandleStripeWebhook receives processor events. The raw body is verified
// against the signing secret; a bad signature is a 400, a processing error
// a 500 so the processor redelivers.
func HandleStripeWebhook(c *fiber.Ctx) error {
	if webhookProcessor == nil {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	err := webhookProcessor.Handle(c.Context(), c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
		}
		log.Printf("stripe webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "processing failed"})
	}

	return c.JSON(fiber.Map{"received": true})
}
