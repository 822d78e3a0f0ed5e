package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/app/controllers"
	"github.com/shauncritzer/rewired/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	ac := controllers.GetAdminController()

	// Pages that render forms live in the CSRF group so their templates get
	// a token; only the form-free views stay here.
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", ac.HandleDashboard)

	// Checkout diagnostic
	adminGroup.Get("/test-products", ac.HandleTestProducts)
}
