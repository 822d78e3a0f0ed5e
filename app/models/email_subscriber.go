package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
	SubscriberStatusBounced      = "bounced"
)

// EmailSubscriber is a newsletter/lead-magnet contact. Email carries a unique
// index so repeated sign-ups upsert instead of duplicating rows.
type EmailSubscriber struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;type:varchar(320);not null" json:"email" validate:"required,email"`
	FirstName      string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100)" json:"last_name"`
	Source         string     `gorm:"type:varchar(100)" json:"source"`
	Status         string     `gorm:"type:varchar(20);default:'active'" json:"status" validate:"oneof=active unsubscribed bounced"`
	Tags           string     `gorm:"type:text" json:"tags"`
	Metadata       string     `gorm:"type:text" json:"metadata"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime" json:"subscribed_at"`
	UnsubscribedAt *time.Time `gorm:"type:timestamp;default:null" json:"unsubscribed_at,omitempty"`
}

func (EmailSubscriber) TableName() string {
	return "email_subscribers"
}

func (s *EmailSubscriber) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

// IsActive reports whether the subscriber still receives mail.
func (s *EmailSubscriber) IsActive() bool {
	return s.Status == SubscriberStatusActive
}
