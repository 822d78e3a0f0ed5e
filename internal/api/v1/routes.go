package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/internal/pkg/middleware"
)

// RegisterHandlers attaches every v1 endpoint to the given router group.
// Auth requirements live here, next to the routes they protect.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)

	coach := r.Group("/coach")
	coach.Post("/register", s.PostCoachRegister)
	coach.Get("/count", s.GetCoachCount)
	coach.Post("/increment", s.PostCoachIncrement)

	email := r.Group("/email")
	email.Post("/subscribe", s.PostEmailSubscribe)
	email.Get("/check", s.GetEmailCheck)

	magnets := r.Group("/lead-magnets")
	magnets.Get("/", s.GetLeadMagnets)
	magnets.Post("/download", s.PostLeadMagnetDownload)
	magnets.Get("/:slug", s.GetLeadMagnet)

	reflections := r.Group("/guide")
	reflections.Post("/reflections", s.PostGuideReflections)
	reflections.Get("/reflections", s.GetGuideReflections)

	members := r.Group("/members", middleware.RequireAPISessionAuth)
	members.Get("/purchases", s.GetMemberPurchases)
	members.Get("/courses/:slug/access", s.GetCourseAccess)
	members.Get("/courses/:slug/content", s.GetCourseContent)
	members.Get("/courses/:slug/progress", s.GetCourseProgress)
	members.Post("/lessons/complete", s.PostLessonComplete)

	r.Post("/checkout/session", s.PostCheckoutSession)

	admin := r.Group("/admin", middleware.RequireAPIAdminAuth)
	admin.Post("/seed/blog-posts", s.PostSeedBlogPosts)
	admin.Post("/seed/products", s.PostSeedProducts)
	admin.Post("/seed/lead-magnets", s.PostSeedLeadMagnets)
	admin.Post("/seed/lessons", s.PostSeedLessons)
	admin.Post("/seed/all", s.PostSeedAll)
	admin.Post("/seed/fix-lead-magnet-files", s.PostFixLeadMagnetFiles)
}
