package apiv1

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/convertkit"
	"github.com/shauncritzer/rewired/internal/pkg/gate"
	"github.com/shauncritzer/rewired/internal/pkg/guide"
	"github.com/shauncritzer/rewired/internal/pkg/leadmagnets"
	"github.com/shauncritzer/rewired/internal/pkg/mail"
	"github.com/shauncritzer/rewired/internal/pkg/payments"
	"github.com/shauncritzer/rewired/internal/pkg/seed"
	"github.com/shauncritzer/rewired/internal/pkg/usercontext"
)

// APIServer carries the services behind the JSON endpoints.
type APIServer struct {
	repos       *repository.Repositories
	gate        *gate.Service
	checkout    *payments.Service
	leadMagnets *leadmagnets.Service
	marketing   *convertkit.Client
	reflections *guide.Store
	seeder      *seed.Seeder
}

// NewAPIServer creates a new API server instance wired against the global
// repositories.
func NewAPIServer() *APIServer {
	repos := repository.GetGlobalRepositories()

	var mailer mail.Mailer
	if m, err := mail.NewResendMailerFromEnv(); err == nil {
		mailer = m
	} else {
		mailer = mail.NoopMailer{}
	}

	marketing := convertkit.NewClientFromEnv()

	return &APIServer{
		repos:       repos,
		gate:        gate.NewService(repos.CoachUser, repos.Order),
		checkout:    payments.NewService(repos.Product, repos.Order, payments.NewStripeClientFromEnv()),
		leadMagnets: leadmagnets.NewService(repos.LeadMagnet, repos.Subscriber, marketing, mailer),
		marketing:   marketing,
		reflections: guide.NewStore(),
		seeder:      seed.NewSeeder(repos),
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "bad_request",
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": message,
	})
}

func serverError(c *fiber.Ctx, err error) error {
	log.Printf("api: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal",
		"message": "something went wrong",
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetPing handles the ping endpoint.
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// ---- AI coach gate ----

type coachRegisterRequest struct {
	Email        string `json:"email"`
	MessageCount int    `json:"messageCount"`
}

// PostCoachRegister registers an email for the coach. Idempotent: the same
// email lands on the same row, and the anonymous message count the client
// brings along only ever raises the stored count.
func (s *APIServer) PostCoachRegister(c *fiber.Ctx) error {
	var req coachRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return badRequest(c, "a valid email is required")
	}

	if err := s.gate.GrantEntitlement(req.Email, gate.TierRegistered); err != nil {
		return serverError(c, err)
	}
	if req.MessageCount > 0 {
		if err := s.repos.CoachUser.RaiseMessageCount(req.Email, req.MessageCount); err != nil {
			return serverError(c, err)
		}
	}

	// Marketing sync is best-effort and never blocks registration. The
	// request context is gone once the handler returns, so the goroutine
	// gets its own.
	if s.marketing.IsConfigured() {
		go func(email string) {
			if err := s.marketing.Subscribe(context.Background(), email, ""); err != nil {
				log.Printf("coach register: convertkit subscribe %s: %v", email, err)
			}
		}(req.Email)
	}

	user, err := s.repos.CoachUser.GetByEmail(req.Email)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"messageCount":       user.MessageCount,
		"hasUnlimitedAccess": user.HasUnlimitedAccess,
	})
}

// GetCoachCount returns the stored message count and the gate decision for
// the next message.
func (s *APIServer) GetCoachCount(c *fiber.Ctx) error {
	email := normalizeEmail(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	tier, err := s.gate.CheckEntitlement(email)
	if err != nil {
		log.Printf("coach count: entitlement for %s: %v", email, err)
	}

	count := 0
	if user, err := s.repos.CoachUser.GetByEmail(email); err == nil {
		count = user.MessageCount
	}

	decision := gate.Decide(count, tier)
	return c.JSON(fiber.Map{
		"messageCount":  count,
		"tier":          tier.String(),
		"allowed":       decision.Allowed,
		"needsEmail":    decision.NeedsEmail,
		"needsPurchase": decision.NeedsPurchase,
		"remaining":     decision.Remaining,
	})
}

type coachIncrementRequest struct {
	Email string `json:"email"`
}

// PostCoachIncrement spends one coach message. The thresholds are enforced
// here, server-side; a blocked visitor gets the decision flags instead of a
// new count. Unknown emails are not silently created.
func (s *APIServer) PostCoachIncrement(c *fiber.Ctx) error {
	var req coachIncrementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return badRequest(c, "email is required")
	}

	user, err := s.repos.CoachUser.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "unknown email; register first")
		}
		return serverError(c, err)
	}

	tier, err := s.gate.CheckEntitlement(req.Email)
	if err != nil {
		log.Printf("coach increment: entitlement for %s: %v", req.Email, err)
	}

	decision := gate.Decide(user.MessageCount, tier)
	if !decision.Allowed {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"allowed":       false,
			"needsEmail":    decision.NeedsEmail,
			"needsPurchase": decision.NeedsPurchase,
			"messageCount":  user.MessageCount,
		})
	}

	updated, err := s.repos.CoachUser.IncrementMessageCount(req.Email)
	if err != nil {
		return serverError(c, err)
	}

	next := gate.Decide(updated.MessageCount, tier)
	return c.JSON(fiber.Map{
		"allowed":       true,
		"messageCount":  updated.MessageCount,
		"remaining":     decision.Remaining,
		"needsEmail":    next.NeedsEmail && !next.Allowed,
		"needsPurchase": next.NeedsPurchase && !next.Allowed,
	})
}

// ---- Newsletter ----

type subscribeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Source    string `json:"source"`
}

// PostEmailSubscribe adds or refreshes a newsletter subscriber. Upsert by
// email; resubmitting never duplicates a row.
func (s *APIServer) PostEmailSubscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return badRequest(c, "a valid email is required")
	}
	if req.Source == "" {
		req.Source = "website"
	}

	subscriber := &models.EmailSubscriber{
		Email:     req.Email,
		FirstName: req.FirstName,
		Source:    req.Source,
		Status:    models.SubscriberStatusActive,
	}
	if err := s.repos.Subscriber.Upsert(subscriber); err != nil {
		return serverError(c, err)
	}

	if s.marketing.IsConfigured() {
		go func(email, name string) {
			if err := s.marketing.Subscribe(context.Background(), email, name); err != nil {
				log.Printf("email subscribe: convertkit %s: %v", email, err)
			}
		}(req.Email, req.FirstName)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetEmailCheck reports whether an email is an active subscriber.
func (s *APIServer) GetEmailCheck(c *fiber.Ctx) error {
	email := normalizeEmail(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	subscriber, err := s.repos.Subscriber.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"subscribed": false})
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"subscribed": subscriber.Status == models.SubscriberStatusActive,
	})
}

// ---- Lead magnets ----

// GetLeadMagnets lists the active downloads.
func (s *APIServer) GetLeadMagnets(c *fiber.Ctx) error {
	magnets, err := s.leadMagnets.List()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"leadMagnets": magnets})
}

// GetLeadMagnet returns one active download by slug.
func (s *APIServer) GetLeadMagnet(c *fiber.Ctx) error {
	magnet, err := s.leadMagnets.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, leadmagnets.ErrNotFound) {
			return notFound(c, "lead magnet not found")
		}
		return serverError(c, err)
	}
	return c.JSON(magnet)
}

type downloadRequest struct {
	Slug      string `json:"slug"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

// PostLeadMagnetDownload exchanges an email for a download URL.
func (s *APIServer) PostLeadMagnetDownload(c *fiber.Ctx) error {
	var req downloadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	result, err := s.leadMagnets.Download(c.Context(), leadmagnets.DownloadRequest{
		Slug:      req.Slug,
		Email:     req.Email,
		FirstName: req.FirstName,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		switch {
		case errors.Is(err, leadmagnets.ErrInvalidEmail):
			return badRequest(c, "a valid email is required")
		case errors.Is(err, leadmagnets.ErrNotFound):
			return notFound(c, "lead magnet not found")
		default:
			return serverError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"downloadUrl": result.DownloadURL,
		"title":       result.Magnet.Title,
	})
}

// ---- Reading guide reflections ----

type saveReflectionsRequest struct {
	Email       string            `json:"email"`
	Reflections map[string]string `json:"reflections"`
}

// PostGuideReflections stores the reflections map for an email. Keys are
// "{part}-{question}"; anything else is rejected before writing.
func (s *APIServer) PostGuideReflections(c *fiber.Ctx) error {
	var req saveReflectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return badRequest(c, "email is required")
	}

	if err := s.reflections.Save(req.Email, guide.Reflections(req.Reflections)); err != nil {
		if errors.Is(err, guide.ErrInvalidKey) {
			return badRequest(c, err.Error())
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetGuideReflections returns the stored reflections map, empty when none
// were saved yet.
func (s *APIServer) GetGuideReflections(c *fiber.Ctx) error {
	email := normalizeEmail(c.Query("email"))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	reflections, err := s.reflections.Get(email)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"reflections": reflections})
}

// ---- Members ----

// GetMemberPurchases lists the completed orders of the logged-in member.
func (s *APIServer) GetMemberPurchases(c *fiber.Ctx) error {
	email := usercontext.GetUserEmail(c)

	orders, err := s.repos.Order.GetCompletedByEmail(email)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"purchases": orders})
}

// GetCourseAccess reports whether the member owns the course.
func (s *APIServer) GetCourseAccess(c *fiber.Ctx) error {
	email := usercontext.GetUserEmail(c)
	slug := c.Params("slug")

	ok, err := s.repos.Order.HasCompletedOrder(email, slug)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"hasAccess": ok})
}

// GetCourseContent returns the lessons of a purchased course.
func (s *APIServer) GetCourseContent(c *fiber.Ctx) error {
	email := usercontext.GetUserEmail(c)
	slug := c.Params("slug")

	ok, err := s.repos.Order.HasCompletedOrder(email, slug)
	if err != nil {
		return serverError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "course not purchased",
		})
	}

	lessons, err := s.repos.CourseLesson.GetByProductSlug(slug)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"lessons": lessons})
}

// GetCourseProgress returns the member's completed lessons for a course.
func (s *APIServer) GetCourseProgress(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	slug := c.Params("slug")

	progress, err := s.repos.CourseLesson.GetProgress(userID, slug)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"progress": progress})
}

type lessonCompleteRequest struct {
	LessonID uint `json:"lessonId"`
}

// PostLessonComplete marks a lesson done. Marking twice is a no-op.
func (s *APIServer) PostLessonComplete(c *fiber.Ctx) error {
	var req lessonCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	lesson, err := s.repos.CourseLesson.GetByID(req.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "lesson not found")
		}
		return serverError(c, err)
	}

	email := usercontext.GetUserEmail(c)
	ok, err := s.repos.Order.HasCompletedOrder(email, lesson.ProductSlug)
	if err != nil {
		return serverError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "course not purchased",
		})
	}

	if err := s.repos.CourseLesson.MarkComplete(usercontext.GetUserID(c), lesson.ID, lesson.ProductSlug); err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ---- Checkout ----

type checkoutRequest struct {
	PriceID   string `json:"priceId"`
	Email     string `json:"email"`
	Recurring bool   `json:"recurring"`
}

// PostCheckoutSession opens a checkout session for a raw processor price id.
func (s *APIServer) PostCheckoutSession(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	session, err := s.checkout.CreateCheckoutSessionForPrice(c.Context(), req.PriceID, req.Email, req.Recurring)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			return badRequest(c, "priceId is required")
		}
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"sessionId": session.SessionID,
		"url":       session.URL,
	})
}

// ---- Admin seed operations ----

func seedResponse(c *fiber.Ctx, r seed.Result) error {
	return c.JSON(fiber.Map{
		"success": r.Success,
		"message": r.Message(),
	})
}

func (s *APIServer) PostSeedBlogPosts(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.SeedBlogPosts())
}

func (s *APIServer) PostSeedProducts(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.SeedProducts())
}

func (s *APIServer) PostSeedLeadMagnets(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.SeedLeadMagnets())
}

func (s *APIServer) PostSeedLessons(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.SeedLessons())
}

func (s *APIServer) PostSeedAll(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.SeedAll())
}

func (s *APIServer) PostFixLeadMagnetFiles(c *fiber.Ctx) error {
	return seedResponse(c, s.seeder.FixLeadMagnetFiles())
}
