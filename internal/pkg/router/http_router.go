package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/app/controllers"
	"github.com/shauncritzer/rewired/internal/pkg/middleware"
	"github.com/shauncritzer/rewired/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers that carry services
	controllers.InitializeProductController()
	controllers.InitializeResourcesController()
	controllers.InitializeMembersController()
	controllers.InitializeAdminController()
	controllers.InitializeWebhookController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context; this middleware
	// just passes through for routes that render for guests and members
	// alike.
	return c.Next()
}
