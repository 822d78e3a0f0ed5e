package models

import "time"

// PaymentEvent stores processor webhook payloads with deduplication metadata
// for idempotent processing. StripeEventID carries a unique index; a second
// delivery of the same event inserts nothing.
type PaymentEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderID         *uint      `gorm:"index" json:"order_id,omitempty"`
	EventType       string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	StripeEventID   string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"stripe_event_id"`
	Payload         string     `gorm:"type:longtext;not null" json:"payload"`
	SignatureValid  bool       `gorm:"default:false" json:"signature_valid"`
	Processed       bool       `gorm:"default:false;index" json:"processed"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}
