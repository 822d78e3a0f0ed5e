package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/app/controllers"
	"github.com/shauncritzer/rewired/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Blog
	app.Get("/blog", loggedInMiddleware, controllers.HandleBlogIndex)
	app.Get("/blog/:slug", loggedInMiddleware, controllers.HandleBlogShow)

	// Static pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)
	app.Get("/faq", loggedInMiddleware, controllers.HandleFAQ)
	app.Get("/privacy", loggedInMiddleware, controllers.HandlePrivacy)
	app.Get("/terms", loggedInMiddleware, controllers.HandleTerms)
	app.Get("/relief", loggedInMiddleware, controllers.HandleRelief)
	app.Get("/coach", loggedInMiddleware, controllers.HandleCoach)

	// Sales pages without forms; the product page itself renders the
	// checkout form and lives in the CSRF group
	pc := controllers.GetProductController()
	app.Get("/products", loggedInMiddleware, pc.HandleProducts)
	app.Get("/products/:slug/success", loggedInMiddleware, pc.HandleCheckoutSuccess)

	// Free resources
	rc := controllers.GetResourcesController()
	app.Get("/resources", loggedInMiddleware, rc.HandleResources)
	app.Get("/excerpt", loggedInMiddleware, rc.HandleExcerpt)
	app.Get("/downloads/t/:token", loggedInMiddleware, rc.HandleSignedDownload)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}
