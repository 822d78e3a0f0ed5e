package models

import "time"

// LessonProgress marks a lesson completed by a user. The user+lesson pair is
// unique so marking twice is a no-op.
type LessonProgress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:ux_lesson_progress_user_lesson,unique,priority:1" json:"user_id"`
	LessonID    uint      `gorm:"not null;index:ux_lesson_progress_user_lesson,unique,priority:2" json:"lesson_id"`
	ProductSlug string    `gorm:"type:varchar(255);not null;index" json:"product_slug"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
