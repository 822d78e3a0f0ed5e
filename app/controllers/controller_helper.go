package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shauncritzer/rewired/internal/pkg/env"
	"github.com/shauncritzer/rewired/internal/pkg/usercontext"
)

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

// viewData builds the base template data shared by every page.
func viewData(c *fiber.Ctx, title string) fiber.Map {
	userCtx := usercontext.GetUserContext(c)

	csrfToken := ""
	if v, ok := c.Locals("csrf").(string); ok {
		csrfToken = v
	}

	return fiber.Map{
		"Title":         title,
		"FromProtected": userCtx.IsLoggedIn,
		"Username":      userCtx.Username,
		"IsAdmin":       userCtx.IsAdmin,
		"Flash":         flash.Get(c),
		"CSRFToken":     csrfToken,
		"IsDev":         env.IsDev(),
	}
}

// GetClientIP resolves the real client address behind Cloudflare or other
// proxies.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return c.IP()
}
