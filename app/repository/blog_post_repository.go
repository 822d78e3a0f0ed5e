package repository

import (
	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
)

// blogPostRepository implements the BlogPostRepository interface
type blogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository creates a new blog post repository instance
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

// Create creates a new blog post in the database
func (r *blogPostRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a blog post by its ID
func (r *blogPostRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a blog post by its slug
func (r *blogPostRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublished retrieves published posts newest first with pagination
func (r *blogPostRepository) GetPublished(offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").Where("status = ?", models.BlogStatusPublished).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// GetPublishedByCategory retrieves published posts in a category with pagination
func (r *blogPostRepository) GetPublishedByCategory(category string, offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").
		Where("status = ? AND category = ?", models.BlogStatusPublished, category).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// GetAll retrieves all posts regardless of status with pagination
func (r *blogPostRepository) GetAll(offset, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// Update updates an existing blog post in the database
func (r *blogPostRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a blog post by its ID
func (r *blogPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// Count returns the total number of blog posts
func (r *blogPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}

// CountPublished returns the number of published blog posts
func (r *blogPostRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("status = ?", models.BlogStatusPublished).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *blogPostRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *blogPostRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// IncrementViewCount bumps the view counter atomically
func (r *blogPostRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
