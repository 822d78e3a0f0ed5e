package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CourseLesson is one unit of a paid course, scoped by the product slug it
// belongs to.
type CourseLesson struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductSlug   string    `gorm:"type:varchar(255);not null;index" json:"product_slug" validate:"required"`
	ModuleNumber  int       `gorm:"not null;default:1" json:"module_number"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Content       string    `gorm:"type:longtext" json:"content"`
	VideoURL      *string   `gorm:"type:varchar(512)" json:"video_url,omitempty"`
	VideoDuration *int      `json:"video_duration,omitempty"`
	SortOrder     int       `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CourseLesson) TableName() string {
	return "course_lessons"
}

func (l *CourseLesson) Validate() error {
	v := validator.New()
	return v.Struct(l)
}
