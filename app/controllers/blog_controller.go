package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/metrics/counter"
	"github.com/shauncritzer/rewired/internal/pkg/viewmodel"
)

const blogPageSize = 9

// HandleBlogIndex renders the published articles, newest first. An optional
// category query narrows the list.
func HandleBlogIndex(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * blogPageSize
	category := c.Query("category", "")

	var (
		posts []models.BlogPost
		err   error
	)
	if category != "" {
		posts, err = repos.BlogPost.GetPublishedByCategory(category, offset, blogPageSize)
	} else {
		posts, err = repos.BlogPost.GetPublished(offset, blogPageSize)
	}
	if err != nil {
		log.Printf("blog index: load posts: %v", err)
	}

	total, err := repos.BlogPost.CountPublished()
	if err != nil {
		log.Printf("blog index: count posts: %v", err)
	}
	totalPages := int(total) / blogPageSize
	if int(total)%blogPageSize > 0 {
		totalPages++
	}

	postVMs := make([]viewmodel.BlogPost, 0, len(posts))
	for i := range posts {
		postVMs = append(postVMs, viewmodel.NewBlogPost(&posts[i]))
	}

	data := viewData(c, "Blog | Rewired")
	data["Posts"] = postVMs
	data["Category"] = category
	data["Page"] = page
	data["TotalPages"] = totalPages
	data["HasPrev"] = page > 1
	data["HasNext"] = page < totalPages
	data["PrevPage"] = page - 1
	data["NextPage"] = page + 1

	return c.Render("pages/blog_index", data)
}

// HandleBlogShow renders a single article. The view count is bumped in the
// background and never delays the response.
func HandleBlogShow(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	slug := c.Params("slug")
	post, err := repos.BlogPost.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HandleNotFound(c)
		}
		log.Printf("blog show: load %s: %v", slug, err)
		return HandleNotFound(c)
	}
	if post.Status != models.BlogStatusPublished {
		return HandleNotFound(c)
	}

	go func(id uint) {
		if err := counter.AddBlogView(id); err != nil {
			log.Printf("blog show: count view for %d: %v", id, err)
		}
	}(post.ID)

	data := viewData(c, post.Title+" | Rewired")
	data["Post"] = viewmodel.NewBlogPost(post)

	return c.Render("pages/blog_show", data)
}
