package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/breathing"
	"github.com/shauncritzer/rewired/internal/pkg/viewmodel"
)

// HandleStart renders the landing page: latest articles, the offers and the
// free downloads in one view.
func HandleStart(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	data := viewData(c, "Rewired | From Rock Bottom to Rewired")

	posts, err := repos.BlogPost.GetPublished(0, 3)
	if err != nil {
		log.Printf("home: load posts: %v", err)
	}
	postVMs := make([]viewmodel.BlogPost, 0, len(posts))
	for i := range posts {
		postVMs = append(postVMs, viewmodel.NewBlogPost(&posts[i]))
	}
	data["Posts"] = postVMs

	products, err := repos.Product.GetActive()
	if err != nil {
		log.Printf("home: load products: %v", err)
	}
	productVMs := make([]viewmodel.Product, 0, len(products))
	for i := range products {
		productVMs = append(productVMs, viewmodel.NewProduct(&products[i]))
	}
	data["Products"] = productVMs

	magnets, err := repos.LeadMagnet.GetActive()
	if err != nil {
		log.Printf("home: load lead magnets: %v", err)
	}
	magnetVMs := make([]viewmodel.LeadMagnet, 0, len(magnets))
	for i := range magnets {
		magnetVMs = append(magnetVMs, viewmodel.NewLeadMagnet(&magnets[i]))
	}
	data["LeadMagnets"] = magnetVMs

	return c.Render("pages/home", data)
}

func HandleAbout(c *fiber.Ctx) error {
	return c.Render("pages/about", viewData(c, "About Shaun | Rewired"))
}

func HandleFAQ(c *fiber.Ctx) error {
	return c.Render("pages/faq", viewData(c, "FAQ | Rewired"))
}

func HandlePrivacy(c *fiber.Ctx) error {
	return c.Render("pages/privacy", viewData(c, "Privacy Policy | Rewired"))
}

func HandleTerms(c *fiber.Ctx) error {
	return c.Render("pages/terms", viewData(c, "Terms of Service | Rewired"))
}

// HandleRelief renders the craving relief tool with the guided breathing
// phases. The timer itself runs client-side against the same phase table.
func HandleRelief(c *fiber.Ctx) error {
	data := viewData(c, "Craving Relief | Rewired")

	phases := []breathing.Phase{
		breathing.PhaseInhale,
		breathing.PhaseHoldIn,
		breathing.PhaseExhale,
		breathing.PhaseHoldOut,
	}
	labels := make([]string, 0, len(phases))
	for _, p := range phases {
		labels = append(labels, p.Label())
	}
	data["PhaseLabels"] = labels
	data["PhaseSeconds"] = breathing.PhaseSeconds
	data["Cycles"] = breathing.TotalCycles

	return c.Render("pages/relief", data)
}

// HandleNotFound is the fallback for unmatched routes.
func HandleNotFound(c *fiber.Ctx) error {
	data := viewData(c, "Page Not Found | Rewired")
	return c.Status(fiber.StatusNotFound).Render("pages/404", data)
}
