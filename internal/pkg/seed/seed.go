package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/env"
)

// Result is the outcome of one seed operation. Messages accumulate per step
// so a partially failed run still reports what happened.
type Result struct {
	Success  bool     `json:"success"`
	Messages []string `json:"messages"`
}

// Message joins the per-step messages for the admin UI.
func (r Result) Message() string {
	return strings.Join(r.Messages, "; ")
}

// Seeder inserts the initial content. Every operation is idempotent: a
// second run inserts zero rows and reports what already existed.
type Seeder struct {
	users    repository.UserRepository
	posts    repository.BlogPostRepository
	magnets  repository.LeadMagnetRepository
	products repository.ProductRepository
	lessons  repository.CourseLessonRepository
}

func NewSeeder(repos *repository.Repositories) *Seeder {
	return &Seeder{
		users:    repos.User,
		posts:    repos.BlogPost,
		magnets:  repos.LeadMagnet,
		products: repos.Product,
		lessons:  repos.CourseLesson,
	}
}

// SeedAdminUser ensures the admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// exists. Without both env values the step is skipped, not failed.
func (s *Seeder) SeedAdminUser() Result {
	email := env.GetEnv("ADMIN_EMAIL", "")
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return Result{Success: true, Messages: []string{"admin user skipped: ADMIN_EMAIL/ADMIN_PASSWORD not set"}}
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return Result{Success: true, Messages: []string{fmt.Sprintf("admin user %s already exists", email)}}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{Messages: []string{fmt.Sprintf("admin user lookup failed: %v", err)}}
	}

	admin, err := models.CreateUser("Shaun", email, password)
	if err != nil {
		return Result{Messages: []string{fmt.Sprintf("admin user invalid: %v", err)}}
	}
	admin.Role = models.ROLE_ADMIN
	if err := s.users.Create(admin); err != nil {
		return Result{Messages: []string{fmt.Sprintf("admin user create failed: %v", err)}}
	}
	return Result{Success: true, Messages: []string{fmt.Sprintf("created admin user %s", email)}}
}

// SeedProducts installs the three launch offers.
func (s *Seeder) SeedProducts() Result {
	products := []*models.Product{
		{
			Name:          "7-Day Reset",
			Slug:          "7-day-reset",
			Description:   "A one-week guided program to break the cycle and build your first week of momentum.",
			Price:         2700,
			Currency:      "usd",
			Type:          models.ProductTypeOneTime,
			StripePriceID: env.GetEnv("STRIPE_PRICE_7_DAY_RESET", ""),
			Status:        models.ProductStatusActive,
		},
		{
			Name:          "Recovery Roadmap",
			Slug:          "recovery-roadmap",
			Description:   "The complete self-paced course: every tool, worksheet and lesson from the book.",
			Price:         9700,
			Currency:      "usd",
			Type:          models.ProductTypeOneTime,
			StripePriceID: env.GetEnv("STRIPE_PRICE_RECOVERY_ROADMAP", ""),
			Status:        models.ProductStatusActive,
		},
		{
			Name:            "Recovery Membership",
			Slug:            "membership",
			Description:     "Monthly live calls, the private community and every future course update.",
			Price:           2900,
			Currency:        "usd",
			Type:            models.ProductTypeRecurring,
			BillingInterval: "month",
			StripePriceID:   env.GetEnv("STRIPE_PRICE_MEMBERSHIP", ""),
			Status:          models.ProductStatusActive,
		},
	}

	features := map[string][]string{
		"7-day-reset":      {"7 daily video lessons", "Printable daily worksheets", "Craving emergency plan"},
		"recovery-roadmap": {"40+ video lessons", "Lifetime access", "All worksheets and guides", "Unlimited AI coach access"},
		"membership":       {"Monthly live group calls", "Private community", "All future courses included"},
	}

	var result Result
	result.Success = true
	for _, p := range products {
		if err := p.SetFeatures(features[p.Slug]); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("product %s: encode features: %v", p.Slug, err))
			continue
		}

		existing, err := s.products.GetBySlug(p.Slug)
		if err == nil && existing != nil {
			result.Messages = append(result.Messages, fmt.Sprintf("product %s already exists", p.Slug))
			continue
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("product %s: lookup failed: %v", p.Slug, err))
			continue
		}

		if err := s.products.Upsert(p); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("product %s: create failed: %v", p.Slug, err))
			continue
		}
		result.Messages = append(result.Messages, fmt.Sprintf("created product %s", p.Slug))
	}
	return result
}

// SeedLeadMagnets installs the free downloads.
func (s *Seeder) SeedLeadMagnets() Result {
	magnets := []*models.LeadMagnet{
		{
			Title:       "First 3 Chapters",
			Slug:        "first-3-chapters",
			Description: "The opening chapters of Rewired, free.",
			FileURL:     "/downloads/first-3-chapters.pdf",
			Type:        models.LeadMagnetTypePDF,
			Status:      models.LeadMagnetStatusActive,
		},
		{
			Title:       "Reading Guide",
			Slug:        "reading-guide",
			Description: "Reflection questions for every part of the book.",
			FileURL:     "/downloads/reading-guide.pdf",
			Type:        models.LeadMagnetTypePDF,
			Status:      models.LeadMagnetStatusActive,
		},
		{
			Title:       "Craving Emergency Card",
			Slug:        "craving-emergency-card",
			Description: "A printable card for the worst five minutes.",
			FileURL:     "/downloads/craving-emergency-card.pdf",
			Type:        models.LeadMagnetTypePDF,
			Status:      models.LeadMagnetStatusActive,
		},
	}

	var result Result
	result.Success = true
	for _, m := range magnets {
		existing, err := s.magnets.GetBySlug(m.Slug)
		if err == nil && existing != nil {
			result.Messages = append(result.Messages, fmt.Sprintf("lead magnet %s already exists", m.Slug))
			continue
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("lead magnet %s: lookup failed: %v", m.Slug, err))
			continue
		}

		if err := s.magnets.Upsert(m); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("lead magnet %s: create failed: %v", m.Slug, err))
			continue
		}
		result.Messages = append(result.Messages, fmt.Sprintf("created lead magnet %s", m.Slug))
	}
	return result
}

// FixLeadMagnetFiles repoints lead magnet file URLs at the current public
// paths. Safe to run repeatedly.
func (s *Seeder) FixLeadMagnetFiles() Result {
	magnets, err := s.magnets.GetAll()
	if err != nil {
		return Result{Messages: []string{fmt.Sprintf("load lead magnets: %v", err)}}
	}

	var result Result
	result.Success = true
	fixed := 0
	for i := range magnets {
		m := &magnets[i]
		want := "/downloads/" + m.Slug + ".pdf"
		if m.Type != models.LeadMagnetTypePDF || m.FileURL == want {
			continue
		}
		m.FileURL = want
		if err := s.magnets.Update(m); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("lead magnet %s: update failed: %v", m.Slug, err))
			continue
		}
		fixed++
	}
	result.Messages = append(result.Messages, fmt.Sprintf("fixed %d lead magnet file path(s)", fixed))
	return result
}

// SeedBlogPosts installs the launch articles under the admin author.
func (s *Seeder) SeedBlogPosts() Result {
	author, err := s.adminAuthor()
	if err != nil {
		return Result{Messages: []string{fmt.Sprintf("blog posts: no author available: %v", err)}}
	}

	now := time.Now()
	posts := []*models.BlogPost{
		{
			Title:    "Why I Wrote Rewired",
			Excerpt:  "Eleven years ago I could not imagine a single sober week. This is the story of what changed.",
			Content:  "<p>Eleven years ago I could not imagine a single sober week...</p>",
			Category: "Recovery",
		},
		{
			Title:    "The First 72 Hours: What Actually Helps",
			Excerpt:  "Forget willpower. The first three days are about logistics.",
			Content:  "<p>Forget willpower. The first three days are about logistics...</p>",
			Category: "Early Recovery",
		},
		{
			Title:    "Cravings Are a Wave, Not a Wall",
			Excerpt:  "Every craving has a shape. Learning it changes everything.",
			Content:  "<p>Every craving has a shape. Learning it changes everything...</p>",
			Category: "Tools",
		},
	}

	var result Result
	result.Success = true
	for _, p := range posts {
		p.Slug = models.Slugify(p.Title)
		p.Status = models.BlogStatusPublished
		p.PublishedAt = &now
		p.AuthorID = author.ID

		exists, err := s.posts.SlugExists(p.Slug)
		if err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("post %s: lookup failed: %v", p.Slug, err))
			continue
		}
		if exists {
			result.Messages = append(result.Messages, fmt.Sprintf("post %s already exists", p.Slug))
			continue
		}

		if err := s.posts.Create(p); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("post %s: create failed: %v", p.Slug, err))
			continue
		}
		result.Messages = append(result.Messages, fmt.Sprintf("created post %s", p.Slug))
	}
	return result
}

// SeedLessons installs the Recovery Roadmap curriculum.
func (s *Seeder) SeedLessons() Result {
	const slug = "recovery-roadmap"

	count, err := s.lessons.CountByProductSlug(slug)
	if err != nil {
		return Result{Messages: []string{fmt.Sprintf("lessons: count failed: %v", err)}}
	}
	if count > 0 {
		return Result{Success: true, Messages: []string{fmt.Sprintf("%d lessons for %s already exist", count, slug)}}
	}

	lessons := []*models.CourseLesson{
		{ProductSlug: slug, ModuleNumber: 1, SortOrder: 1, Title: "Welcome: How to Use This Course"},
		{ProductSlug: slug, ModuleNumber: 1, SortOrder: 2, Title: "The Honest Inventory"},
		{ProductSlug: slug, ModuleNumber: 2, SortOrder: 1, Title: "Mapping Your Triggers"},
		{ProductSlug: slug, ModuleNumber: 2, SortOrder: 2, Title: "The Craving Wave Technique"},
		{ProductSlug: slug, ModuleNumber: 3, SortOrder: 1, Title: "Rebuilding Trust"},
		{ProductSlug: slug, ModuleNumber: 3, SortOrder: 2, Title: "Your Relapse Prevention Plan"},
	}

	var result Result
	result.Success = true
	created := 0
	for _, l := range lessons {
		if err := s.lessons.Create(l); err != nil {
			result.Success = false
			result.Messages = append(result.Messages, fmt.Sprintf("lesson %q: create failed: %v", l.Title, err))
			continue
		}
		created++
	}
	result.Messages = append(result.Messages, fmt.Sprintf("created %d lessons for %s", created, slug))
	return result
}

// SeedAll runs every step. Later steps run even when earlier ones fail; the
// combined result reports each step's outcome.
func (s *Seeder) SeedAll() Result {
	steps := []func() Result{
		s.SeedAdminUser,
		s.SeedProducts,
		s.SeedLeadMagnets,
		s.SeedBlogPosts,
		s.SeedLessons,
	}

	combined := Result{Success: true}
	for _, step := range steps {
		r := step()
		combined.Messages = append(combined.Messages, r.Messages...)
		if !r.Success {
			combined.Success = false
		}
	}
	return combined
}

func (s *Seeder) adminAuthor() (*models.User, error) {
	if email := env.GetEnv("ADMIN_EMAIL", ""); email != "" {
		if u, err := s.users.GetByEmail(email); err == nil {
			return u, nil
		}
	}
	users, err := s.users.List(0, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.New("no users exist yet")
	}
	return &users[0], nil
}
