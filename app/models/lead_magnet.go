package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	LeadMagnetTypePDF    = "pdf"
	LeadMagnetTypeVideo  = "video"
	LeadMagnetTypeAudio  = "audio"
	LeadMagnetTypeCourse = "course"
	LeadMagnetTypeOther  = "other"
)

const (
	LeadMagnetStatusActive   = "active"
	LeadMagnetStatusInactive = "inactive"
)

// LeadMagnet is a free downloadable resource offered in exchange for an email
// address. FileURL/FileKey point at the stored asset (S3 or /public).
type LeadMagnet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Slug          string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"slug" validate:"required,min=3,max=255"`
	Description   string    `gorm:"type:text" json:"description"`
	FileURL       string    `gorm:"type:varchar(512)" json:"file_url"`
	FileKey       string    `gorm:"type:varchar(512)" json:"file_key"`
	CoverImage    string    `gorm:"type:varchar(512)" json:"cover_image"`
	Type          string    `gorm:"type:varchar(20);not null;default:'pdf'" json:"type" validate:"oneof=pdf video audio course other"`
	IsPaid        bool      `gorm:"default:false" json:"is_paid"`
	Price         int64     `gorm:"default:0" json:"price"`
	DownloadCount int64     `gorm:"default:0" json:"download_count"`
	Status        string    `gorm:"type:varchar(20);default:'active';index" json:"status" validate:"oneof=active inactive"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeadMagnet) TableName() string {
	return "lead_magnets"
}

func (m *LeadMagnet) Validate() error {
	v := validator.New()
	return v.Struct(m)
}

// IsActive reports whether the lead magnet is listed on the resources page.
func (m *LeadMagnet) IsActive() bool {
	return m.Status == LeadMagnetStatusActive
}
