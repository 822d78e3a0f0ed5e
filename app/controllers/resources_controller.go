package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/convertkit"
	"github.com/shauncritzer/rewired/internal/pkg/env"
	"github.com/shauncritzer/rewired/internal/pkg/leadmagnets"
	"github.com/shauncritzer/rewired/internal/pkg/mail"
	"github.com/shauncritzer/rewired/internal/pkg/security"
	"github.com/shauncritzer/rewired/internal/pkg/viewmodel"
)

// ResourcesController serves the free-download pages backed by the lead
// magnet service.
type ResourcesController struct {
	service *leadmagnets.Service
}

var resourcesController *ResourcesController

// InitializeResourcesController wires the lead magnet service with the
// marketing client and mailer. Called once during router setup.
func InitializeResourcesController() {
	repos := repository.GetGlobalRepositories()

	var mailer mail.Mailer
	if m, err := mail.NewResendMailerFromEnv(); err == nil {
		mailer = m
	} else {
		log.Printf("resources: mailer disabled: %v", err)
		mailer = mail.NoopMailer{}
	}

	resourcesController = &ResourcesController{
		service: leadmagnets.NewService(
			repos.LeadMagnet,
			repos.Subscriber,
			convertkit.NewClientFromEnv(),
			mailer,
		),
	}
}

// GetResourcesController returns the initialized controller instance.
func GetResourcesController() *ResourcesController {
	if resourcesController == nil {
		panic("Resources controller not initialized. Call InitializeResourcesController first.")
	}
	return resourcesController
}

// HandleResources renders every active free download.
func (rc *ResourcesController) HandleResources(c *fiber.Ctx) error {
	magnets, err := rc.service.List()
	if err != nil {
		log.Printf("resources: load: %v", err)
	}

	magnetVMs := make([]viewmodel.LeadMagnet, 0, len(magnets))
	for i := range magnets {
		magnetVMs = append(magnetVMs, viewmodel.NewLeadMagnet(&magnets[i]))
	}

	data := viewData(c, "Free Resources | Rewired")
	data["LeadMagnets"] = magnetVMs

	return c.Render("pages/resources", data)
}

// HandleResourceShow renders the opt-in page for one download.
func (rc *ResourcesController) HandleResourceShow(c *fiber.Ctx) error {
	magnet, err := rc.service.GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, leadmagnets.ErrNotFound) {
			return HandleNotFound(c)
		}
		log.Printf("resource show: %v", err)
		return HandleNotFound(c)
	}

	data := viewData(c, magnet.Title+" | Rewired")
	data["LeadMagnet"] = viewmodel.NewLeadMagnet(magnet)

	return c.Render("pages/resource_show", data)
}

// HandleResourceDownload exchanges an email for the file. On success the
// browser is sent straight to the download.
func (rc *ResourcesController) HandleResourceDownload(c *fiber.Ctx) error {
	slug := c.Params("slug")

	result, err := rc.service.Download(c.Context(), leadmagnets.DownloadRequest{
		Slug:      slug,
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("first_name"),
		IPAddress: GetClientIP(c),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, leadmagnets.ErrNotFound) {
			return HandleNotFound(c)
		}

		msg := "Something went wrong. Please try again."
		if errors.Is(err, leadmagnets.ErrInvalidEmail) {
			msg = "Please enter a valid email address."
		} else {
			log.Printf("resource download %s failed: %v", slug, err)
		}

		fm := fiber.Map{
			"type":    "error",
			"message": msg,
		}
		return flash.WithError(c, fm).Redirect("/resources/" + slug)
	}

	// With a signing secret the browser gets an expiring link instead of
	// the raw file URL.
	if secret := env.GetEnv("DOWNLOAD_TOKEN_SECRET", ""); secret != "" {
		token, err := security.GenerateDownloadToken(result.Magnet.ID, c.FormValue("email"), 24*time.Hour, secret)
		if err == nil {
			return c.Redirect("/downloads/t/"+token, fiber.StatusSeeOther)
		}
		log.Printf("resource download: sign link: %v", err)
	}

	return c.Redirect(result.DownloadURL, fiber.StatusSeeOther)
}

// HandleSignedDownload resolves an expiring download link back to the file.
func (rc *ResourcesController) HandleSignedDownload(c *fiber.Ctx) error {
	secret := env.GetEnv("DOWNLOAD_TOKEN_SECRET", "")
	if secret == "" {
		return HandleNotFound(c)
	}

	claims, err := security.VerifyDownloadToken(c.Params("token"), secret)
	if err != nil {
		return HandleNotFound(c)
	}

	repos := repository.GetGlobalRepositories()
	magnet, err := repos.LeadMagnet.GetByID(claims.MagnetID)
	if err != nil {
		return HandleNotFound(c)
	}

	return c.Redirect(rc.service.DownloadURL(magnet), fiber.StatusSeeOther)
}

// HandleExcerpt renders the first-three-chapters excerpt page.
func (rc *ResourcesController) HandleExcerpt(c *fiber.Ctx) error {
	data := viewData(c, "Read the First 3 Chapters | Rewired")
	if magnet, err := rc.service.GetBySlug("first-3-chapters"); err == nil {
		data["LeadMagnet"] = viewmodel.NewLeadMagnet(magnet)
	}
	return c.Render("pages/excerpt", data)
}
