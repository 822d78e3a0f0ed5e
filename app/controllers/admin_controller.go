package controllers

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/constants"
	"github.com/shauncritzer/rewired/internal/pkg/imageprocessor"
	"github.com/shauncritzer/rewired/internal/pkg/payments"
	"github.com/shauncritzer/rewired/internal/pkg/statistics"
	"github.com/shauncritzer/rewired/internal/pkg/storage"
	"github.com/shauncritzer/rewired/internal/pkg/upload"
	"github.com/shauncritzer/rewired/internal/pkg/usercontext"
)

// AdminController handles the admin area using the repository pattern.
type AdminController struct {
	repos    *repository.Repositories
	checkout *payments.Service
	assets   *storage.Client
}

var adminController *AdminController

// InitializeAdminController wires the admin controller with repositories,
// the payment service and the optional S3 asset store. Called once during
// router setup.
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()

	var assets *storage.Client
	if cfg, err := storage.LoadConfig(); err != nil {
		log.Printf("admin: storage config: %v", err)
	} else if cfg.IsEnabled() {
		if client, err := storage.NewClient(cfg); err != nil {
			log.Printf("admin: storage disabled: %v", err)
		} else {
			assets = client
		}
	}

	adminController = &AdminController{
		repos:    repos,
		checkout: payments.NewService(repos.Product, repos.Order, payments.NewStripeClientFromEnv()),
		assets:   assets,
	}
}

// GetAdminController returns the initialized controller instance.
func GetAdminController() *AdminController {
	if adminController == nil {
		panic("Admin controller not initialized. Call InitializeAdminController first.")
	}
	return adminController
}

func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Printf("admin: %s: %v", message, err)
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect("/admin")
}

// HandleDashboard renders the admin overview: funnel counts, recent payment
// events and the seed operations.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	totalPosts, err := ac.repos.BlogPost.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get post count", err)
	}
	totalProducts, err := ac.repos.Product.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get product count", err)
	}
	coachUsers, err := ac.repos.CoachUser.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get coach user count", err)
	}

	events, err := ac.repos.PaymentEvent.ListRecent(10)
	if err != nil {
		log.Printf("admin: load payment events: %v", err)
	}

	data := viewData(c, "Admin Dashboard | Rewired")
	data["TotalSubscribers"] = stats.TotalSubscribers
	data["TotalDownloads"] = stats.TotalDownloads
	data["CompletedOrders"] = stats.CompletedOrders
	data["TotalPosts"] = totalPosts
	data["TotalProducts"] = totalProducts
	data["CoachUsers"] = coachUsers
	data["PaymentEvents"] = events

	return c.Render("pages/admin_dashboard", data)
}

// HandleBlogPosts lists every post, drafts included.
func (ac *AdminController) HandleBlogPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20

	posts, err := ac.repos.BlogPost.GetAll((page-1)*perPage, perPage)
	if err != nil {
		return ac.handleError(c, "Failed to load posts", err)
	}

	data := viewData(c, "Manage Posts | Rewired")
	data["Posts"] = posts
	data["Page"] = page

	return c.Render("pages/admin_posts", data)
}

// HandleBlogPostEdit renders the editor for a new or existing post.
func (ac *AdminController) HandleBlogPostEdit(c *fiber.Ctx) error {
	data := viewData(c, "Edit Post | Rewired")

	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 32)
		if err != nil {
			return c.Redirect("/admin/posts")
		}
		post, err := ac.repos.BlogPost.GetByID(uint(id))
		if err != nil {
			return c.Redirect("/admin/posts")
		}
		data["Post"] = post
		data["TagsCSV"] = strings.Join(post.TagList(), ", ")
	}

	return c.Render("pages/admin_post_edit", data)
}

// HandleBlogPostSave creates or updates a post from the editor form. The
// slug comes from the title; publishing stamps published_at once.
func (ac *AdminController) HandleBlogPostSave(c *fiber.Ctx) error {
	var post *models.BlogPost
	if idParam := c.FormValue("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 32)
		if err != nil {
			return c.Redirect("/admin/posts")
		}
		existing, err := ac.repos.BlogPost.GetByID(uint(id))
		if err != nil {
			return ac.handleError(c, "Post not found", err)
		}
		post = existing
	} else {
		post = &models.BlogPost{AuthorID: usercontext.GetUserID(c)}
	}

	post.Title = c.FormValue("title")
	post.Excerpt = c.FormValue("excerpt")
	post.Content = c.FormValue("content")
	post.Category = c.FormValue("category")

	tags := make([]string, 0)
	for _, t := range strings.Split(c.FormValue("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if err := post.SetTags(tags); err != nil {
		return ac.handleError(c, "Failed to encode tags", err)
	}

	slug := models.Slugify(post.Title)
	if slug != post.Slug {
		taken, err := ac.repos.BlogPost.SlugExistsExceptID(slug, post.ID)
		if err != nil {
			return ac.handleError(c, "Failed to check slug", err)
		}
		if taken {
			slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
		}
		post.Slug = slug
	}

	status := c.FormValue("status", models.BlogStatusDraft)
	if status == models.BlogStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.Status = status

	if coverURL, err := ac.saveCoverImage(c); err != nil {
		return ac.handleError(c, "Cover upload failed", err)
	} else if coverURL != "" {
		post.CoverImage = coverURL
	}

	var err error
	if post.ID == 0 {
		err = ac.repos.BlogPost.Create(post)
	} else {
		err = ac.repos.BlogPost.Update(post)
	}
	if err != nil {
		return ac.handleError(c, "Failed to save post", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post saved",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// saveCoverImage validates, resizes and stores an uploaded cover. Returns
// the public URL of the full-size variant, or "" when no file was sent.
func (ac *AdminController) saveCoverImage(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil || fileHeader == nil {
		return "", nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	if _, err := upload.ValidateImageBySniff(fileHeader.Filename, data); err != nil {
		return "", err
	}

	full, thumb, err := imageprocessor.ProcessCover(data)
	if err != nil {
		return "", err
	}

	if ac.assets == nil {
		return "", fmt.Errorf("S3 storage is not configured")
	}

	base := fmt.Sprintf("%d", time.Now().UnixNano())
	if _, _, err := ac.assets.Upload(c.Context(), "covers", base+"_thumb.jpg", thumb, "image/jpeg"); err != nil {
		return "", err
	}
	_, url, err := ac.assets.Upload(c.Context(), "covers", base+".jpg", full, "image/jpeg")
	if err != nil {
		return "", err
	}
	return url, nil
}

// HandleBlogPostDelete removes a post.
func (ac *AdminController) HandleBlogPostDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/posts")
	}

	if err := ac.repos.BlogPost.Delete(uint(id)); err != nil {
		return ac.handleError(c, "Failed to delete post", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// HandleLessons lists the course curriculum for editing.
func (ac *AdminController) HandleLessons(c *fiber.Ctx) error {
	slug := c.Query("product", "recovery-roadmap")

	lessons, err := ac.repos.CourseLesson.GetByProductSlug(slug)
	if err != nil {
		return ac.handleError(c, "Failed to load lessons", err)
	}

	data := viewData(c, "Manage Lessons | Rewired")
	data["ProductSlug"] = slug
	data["Lessons"] = lessons

	return c.Render("pages/admin_lessons", data)
}

// HandleLessonVideoUpdate sets or clears the video URL of one lesson.
func (ac *AdminController) HandleLessonVideoUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/lessons")
	}

	lesson, err := ac.repos.CourseLesson.GetByID(uint(id))
	if err != nil {
		return ac.handleError(c, "Lesson not found", err)
	}

	videoURL := c.FormValue("video_url")
	if videoURL == "" {
		lesson.VideoURL = nil
	} else {
		lesson.VideoURL = &videoURL
	}
	if d, err := strconv.Atoi(c.FormValue("video_duration")); err == nil && d > 0 {
		lesson.VideoDuration = &d
	}

	if err := ac.repos.CourseLesson.Update(lesson); err != nil {
		return ac.handleError(c, "Failed to update lesson", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Lesson updated",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/lessons?product=" + lesson.ProductSlug)
}

// HandleLeadMagnets lists the downloads with their counts.
func (ac *AdminController) HandleLeadMagnets(c *fiber.Ctx) error {
	magnets, err := ac.repos.LeadMagnet.GetAll()
	if err != nil {
		return ac.handleError(c, "Failed to load lead magnets", err)
	}

	data := viewData(c, "Manage Downloads | Rewired")
	data["LeadMagnets"] = magnets

	return c.Render("pages/admin_leadmagnets", data)
}

// HandleLeadMagnetUpload replaces the PDF behind a lead magnet.
func (ac *AdminController) HandleLeadMagnetUpload(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/downloads")
	}

	magnet, err := ac.repos.LeadMagnet.GetByID(uint(id))
	if err != nil {
		return ac.handleError(c, "Lead magnet not found", err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ac.handleError(c, "No file uploaded", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return ac.handleError(c, "Failed to read upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ac.handleError(c, "Failed to read upload", err)
	}

	if err := upload.ValidatePDFBySniff(fileHeader.Filename, data); err != nil {
		return ac.handleError(c, err.Error(), err)
	}

	if ac.assets == nil {
		return ac.handleError(c, "S3 storage is not configured", fmt.Errorf("no storage client"))
	}

	key, url, err := ac.assets.Upload(c.Context(), constants.DownloadsPath, magnet.Slug+".pdf", data, "application/pdf")
	if err != nil {
		return ac.handleError(c, "Upload failed", err)
	}

	magnet.FileKey = key
	magnet.FileURL = url
	if err := ac.repos.LeadMagnet.Update(magnet); err != nil {
		return ac.handleError(c, "Failed to save lead magnet", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "File replaced",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/downloads")
}

// productCheckResult is one row of the checkout diagnostic.
type productCheckResult struct {
	Name  string
	Slug  string
	URL   string
	Error string
}

// HandleTestProducts runs a checkout session against every product, one
// after another, and shows the session URL or the raw processor error.
func (ac *AdminController) HandleTestProducts(c *fiber.Ctx) error {
	products, err := ac.repos.Product.GetAll()
	if err != nil {
		return ac.handleError(c, "Failed to load products", err)
	}

	results := make([]productCheckResult, 0, len(products))
	for i := range products {
		p := &products[i]
		r := productCheckResult{Name: p.Name, Slug: p.Slug}

		session, err := ac.checkout.CreateCheckoutSession(c.Context(), p.Slug, "diagnostics@shauncritzer.com")
		if err != nil {
			// Raw error text on purpose; this page exists to debug the
			// processor configuration.
			r.Error = err.Error()
		} else {
			r.URL = session.URL
		}
		results = append(results, r)
	}

	data := viewData(c, "Product Checkout Test | Rewired")
	data["Results"] = results

	return c.Render("pages/admin_test_products", data)
}

// cacheKeyRow is one Redis key on the maintenance page.
type cacheKeyRow struct {
	Key string
	TTL string
}

var cacheKeyPatterns = []string{"guide:reflections:*", "blog:counters:*"}

// HandleCacheKeys lists the application-owned Redis keys: saved guide
// reflections and pending view counters. Session keys are left alone.
func (ac *AdminController) HandleCacheKeys(c *fiber.Ctx) error {
	keys, err := ac.repos.Cache.FindKeysByPatterns(cacheKeyPatterns)
	if err != nil {
		return ac.handleError(c, "Failed to scan cache", err)
	}

	rows := make([]cacheKeyRow, 0, len(keys))
	for _, key := range keys {
		row := cacheKeyRow{Key: key, TTL: "none"}
		if ttl, err := ac.repos.Cache.GetTTL(key); err == nil && ttl > 0 {
			row.TTL = ttl.Round(time.Second).String()
		}
		rows = append(rows, row)
	}

	data := viewData(c, "Cache | Rewired")
	data["Keys"] = rows

	return c.Render("pages/admin_cache", data)
}

// HandleCacheDelete removes one Redis key. Only keys matching the known
// application patterns are deletable from here.
func (ac *AdminController) HandleCacheDelete(c *fiber.Ctx) error {
	key := c.FormValue("key")

	allowed := false
	for _, pattern := range cacheKeyPatterns {
		if prefix := strings.TrimSuffix(pattern, "*"); strings.HasPrefix(key, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ac.handleError(c, "Key is not managed here", fmt.Errorf("refusing to delete %q", key))
	}

	deleted, err := ac.repos.Cache.DeleteKeys([]string{key})
	if err != nil {
		return ac.handleError(c, "Failed to delete key", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Deleted %d key(s)", deleted),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/cache")
}
