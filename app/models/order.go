package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
	OrderStatusRefunded  = "refunded"
)

// Order is the local record of a checkout. It is created pending when the
// processor session is opened and completed by the webhook, never by the
// hand-off itself.
type Order struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	OrderNumber           string     `gorm:"uniqueIndex;type:varchar(50);not null" json:"order_number"`
	ProductID             uint       `gorm:"not null;index" json:"product_id"`
	Product               Product    `gorm:"foreignKey:ProductID" json:"-"`
	Email                 string     `gorm:"type:varchar(320);not null;index" json:"email"`
	FirstName             string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName              string     `gorm:"type:varchar(100)" json:"last_name"`
	Amount                int64      `gorm:"not null" json:"amount"`
	Currency              string     `gorm:"type:varchar(3);default:'usd'" json:"currency"`
	Status                string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	StripeSessionID       string     `gorm:"type:varchar(255);index" json:"stripe_session_id"`
	StripePaymentIntentID string     `gorm:"type:varchar(255)" json:"stripe_payment_intent_id"`
	Metadata              string     `gorm:"type:text" json:"metadata"`
	CompletedAt           *time.Time `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// NewOrderNumber mints a short unique order reference.
func NewOrderNumber() string {
	return "RW-" + uuid.NewString()[:18]
}

// IsCompleted reports whether payment was confirmed by the processor.
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
