package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/internal/pkg/gate"
)

// HandleCoach renders the AI coach chat page. Message limits are enforced by
// the coach API; the page just needs the thresholds for its copy.
func HandleCoach(c *fiber.Ctx) error {
	data := viewData(c, "AI Recovery Coach | Rewired")
	data["FreeMessages"] = gate.FreeMessages
	data["RegisteredMessages"] = gate.RegisteredMessages

	return c.Render("pages/coach", data)
}
