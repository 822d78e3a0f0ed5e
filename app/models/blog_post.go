package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// BlogPost is a long-form article. Tags are stored as a JSON-encoded string
// array to match the original schema.
type BlogPost struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Slug        string         `gorm:"uniqueIndex;type:varchar(255);not null" json:"slug" validate:"required,min=3,max=255"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Content     string         `gorm:"type:longtext;not null" json:"content" validate:"required"`
	CoverImage  string         `gorm:"type:varchar(512)" json:"cover_image"`
	Category    string         `gorm:"type:varchar(100)" json:"category"`
	Tags        string         `gorm:"type:text" json:"tags"`
	Status      string         `gorm:"type:varchar(20);default:'draft';index" json:"status" validate:"oneof=draft published archived"`
	PublishedAt *time.Time     `gorm:"type:timestamp;default:null" json:"published_at,omitempty"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	ViewCount   int64          `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (p *BlogPost) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// TagList decodes the JSON tags column. A malformed or empty column yields
// an empty list, never an error.
func (p *BlogPost) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// SetTags encodes the given tags into the JSON tags column.
func (p *BlogPost) SetTags(tags []string) error {
	if len(tags) == 0 {
		p.Tags = ""
		return nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	p.Tags = string(encoded)
	return nil
}

// IsPublished reports whether the post is publicly visible.
func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogStatusPublished
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, non-alphanumerics
// collapsed into single dashes, no leading/trailing dash.
func Slugify(title string) string {
	s := slugCleaner.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
