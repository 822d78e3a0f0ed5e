package viewmodel

import (
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/internal/pkg/utils"
)

// BlogPost is the render model for blog cards and the article page.
type BlogPost struct {
	Title       string
	Slug        string
	Excerpt     string
	ContentHTML string
	CoverImage  string
	Category    string
	Tags        []string
	AuthorName  string
	AuthorImage string
	PublishedAt time.Time
	ViewCount   int64
}

// NewBlogPost builds the render model, processing the stored HTML once.
func NewBlogPost(p *models.BlogPost) BlogPost {
	vm := BlogPost{
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		ContentHTML: utils.ProcessHTMLContent(p.Content),
		CoverImage:  p.CoverImage,
		Category:    p.Category,
		Tags:        p.TagList(),
		AuthorName:  p.Author.Name,
		AuthorImage: utils.GetGravatarURL(p.Author.Email, 80),
		ViewCount:   p.ViewCount,
	}
	if p.PublishedAt != nil {
		vm.PublishedAt = *p.PublishedAt
	}
	return vm
}

// Product is the render model for the sales pages.
type Product struct {
	Name         string
	Slug         string
	Description  string
	DisplayPrice string
	Interval     string
	Features     []string
	CoverImage   string
	Recurring    bool
}

func NewProduct(p *models.Product) Product {
	return Product{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		DisplayPrice: p.DisplayPrice(),
		Interval:     p.BillingInterval,
		Features:     p.FeatureList(),
		CoverImage:   p.CoverImage,
		Recurring:    p.IsRecurring(),
	}
}

// LeadMagnet is the render model for the resources page.
type LeadMagnet struct {
	Title       string
	Slug        string
	Description string
	CoverImage  string
	Type        string
}

func NewLeadMagnet(m *models.LeadMagnet) LeadMagnet {
	return LeadMagnet{
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		CoverImage:  m.CoverImage,
		Type:        m.Type,
	}
}
