package models

import "time"

// LeadMagnetDownload records a single delivery of a lead magnet to an email
// address, for attribution and download counting.
type LeadMagnetDownload struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	LeadMagnetID uint       `gorm:"not null;index" json:"lead_magnet_id"`
	LeadMagnet   LeadMagnet `gorm:"foreignKey:LeadMagnetID" json:"-"`
	SubscriberID *uint      `gorm:"index" json:"subscriber_id,omitempty"`
	Email        string     `gorm:"type:varchar(320);not null;index" json:"email"`
	IPAddress    string     `gorm:"type:varchar(45)" json:"-"`
	UserAgent    string     `gorm:"type:text" json:"-"`
	DownloadedAt time.Time  `gorm:"autoCreateTime" json:"downloaded_at"`
}

func (LeadMagnetDownload) TableName() string {
	return "lead_magnet_downloads"
}
