package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/shauncritzer/rewired/app/controllers"
	"github.com/shauncritzer/rewired/internal/pkg/env"
	"github.com/shauncritzer/rewired/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Email-for-download exchange
	rc := controllers.GetResourcesController()
	group.Get("/resources/:slug", loggedInMiddleware, rc.HandleResourceShow)
	group.Post("/resources/:slug/download", loggedInMiddleware, rc.HandleResourceDownload)

	// Reading guide unlock
	group.Get("/guide", loggedInMiddleware, controllers.HandleGuide)
	group.Post("/guide/unlock", loggedInMiddleware, controllers.HandleGuideUnlock)

	// Checkout hand-off
	pc := controllers.GetProductController()
	group.Get("/products/:slug", loggedInMiddleware, pc.HandleProductShow)
	group.Post("/products/:slug/checkout", loggedInMiddleware, pc.HandleProductCheckout)

	// Members area
	mc := controllers.GetMembersController()
	group.Get("/members", middleware.RequireAuth, mc.HandleMembers)
	group.Get("/members/courses/:slug", middleware.RequireAuth, mc.HandleCourse)
	group.Post("/members/courses/:slug/complete", middleware.RequireAuth, mc.HandleLessonComplete)

	// Admin blog management
	ac := controllers.GetAdminController()
	group.Get("/admin/posts", middleware.RequireAdmin, ac.HandleBlogPosts)
	group.Get("/admin/posts/new", middleware.RequireAdmin, ac.HandleBlogPostEdit)
	group.Get("/admin/posts/edit/:id", middleware.RequireAdmin, ac.HandleBlogPostEdit)
	group.Post("/admin/posts/save", middleware.RequireAdmin, ac.HandleBlogPostSave)
	group.Post("/admin/posts/delete/:id", middleware.RequireAdmin, ac.HandleBlogPostDelete)

	// Admin lead magnet files
	group.Get("/admin/downloads", middleware.RequireAdmin, ac.HandleLeadMagnets)
	group.Post("/admin/downloads/:id/file", middleware.RequireAdmin, ac.HandleLeadMagnetUpload)

	// Admin course curriculum
	group.Get("/admin/lessons", middleware.RequireAdmin, ac.HandleLessons)
	group.Post("/admin/lessons/:id/video", middleware.RequireAdmin, ac.HandleLessonVideoUpdate)

	// Admin Redis maintenance
	group.Get("/admin/cache", middleware.RequireAdmin, ac.HandleCacheKeys)
	group.Post("/admin/cache/delete", middleware.RequireAdmin, ac.HandleCacheDelete)
}
