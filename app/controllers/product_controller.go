package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/payments"
	"github.com/shauncritzer/rewired/internal/pkg/viewmodel"
)

// ProductController handles the sales pages and the checkout hand-off.
type ProductController struct {
	repos    *repository.Repositories
	checkout *payments.Service
}

var productController *ProductController

// InitializeProductController wires the controller with repositories and the
// payment service. Called once during router setup.
func InitializeProductController() {
	repos := repository.GetGlobalRepositories()
	productController = &ProductController{
		repos:    repos,
		checkout: payments.NewService(repos.Product, repos.Order, payments.NewStripeClientFromEnv()),
	}
}

// GetProductController returns the initialized controller instance.
func GetProductController() *ProductController {
	if productController == nil {
		panic("Product controller not initialized. Call InitializeProductController first.")
	}
	return productController
}

// HandleProducts renders all active offers.
func (pc *ProductController) HandleProducts(c *fiber.Ctx) error {
	products, err := pc.repos.Product.GetActive()
	if err != nil {
		log.Printf("products: load: %v", err)
	}

	productVMs := make([]viewmodel.Product, 0, len(products))
	for i := range products {
		productVMs = append(productVMs, viewmodel.NewProduct(&products[i]))
	}

	data := viewData(c, "Courses & Programs | Rewired")
	data["Products"] = productVMs

	return c.Render("pages/products", data)
}

// HandleProductShow renders one sales page. A canceled checkout lands back
// here with ?canceled=true.
func (pc *ProductController) HandleProductShow(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := pc.repos.Product.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HandleNotFound(c)
		}
		log.Printf("product show: load %s: %v", slug, err)
		return HandleNotFound(c)
	}
	if !product.IsActive() {
		return HandleNotFound(c)
	}

	data := viewData(c, product.Name+" | Rewired")
	data["Product"] = viewmodel.NewProduct(product)
	data["Canceled"] = c.Query("canceled") == "true"

	return c.Render("pages/product_show", data)
}

// HandleProductCheckout opens a checkout session and redirects the browser
// to the processor. Failures land back on the sales page with a generic
// toast; the raw error only surfaces on the admin diagnostic page.
func (pc *ProductController) HandleProductCheckout(c *fiber.Ctx) error {
	slug := c.Params("slug")
	email := c.FormValue("email")

	session, err := pc.checkout.CreateCheckoutSession(c.Context(), slug, email)
	if err != nil {
		if errors.Is(err, payments.ErrProductNotFound) {
			return HandleNotFound(c)
		}

		log.Printf("checkout for %s failed: %v", slug, err)
		fm := fiber.Map{
			"type":    "error",
			"message": "Checkout is unavailable right now. Please try again in a moment.",
		}
		return flash.WithError(c, fm).Redirect("/products/" + slug)
	}

	return c.Redirect(session.URL, fiber.StatusSeeOther)
}

// HandleCheckoutSuccess is the return page after a paid checkout. The order
// itself is completed by the webhook, not here.
func (pc *ProductController) HandleCheckoutSuccess(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := pc.repos.Product.GetBySlug(slug)
	if err != nil {
		return HandleNotFound(c)
	}

	data := viewData(c, "Thank You | Rewired")
	data["Product"] = viewmodel.NewProduct(product)
	data["SessionID"] = c.Query("session_id")

	return c.Render("pages/checkout_success", data)
}
