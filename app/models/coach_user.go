package models

import "time"

// CoachUser tracks per-email usage of the AI coach. MessageCount only ever
// grows; HasUnlimitedAccess is set by a completed course purchase and is
// never cleared.
type CoachUser struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;type:varchar(320);not null" json:"email"`
	MessageCount       int       `gorm:"not null;default:0" json:"message_count"`
	HasUnlimitedAccess bool      `gorm:"not null;default:false" json:"has_unlimited_access"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CoachUser) TableName() string {
	return "ai_coach_users"
}
