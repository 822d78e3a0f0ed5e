package repository

import (
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentEventRepository implements the PaymentEventRepository interface
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository creates a new payment event repository instance
func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEventRepository{db: db}
}

// InsertIfAbsent stores the event once per processor event ID. The unique
// index on stripe_event_id makes the second delivery a no-op; the returned
// bool reports whether this call actually inserted the row.
func (r *paymentEventRepository) InsertIfAbsent(event *models.PaymentEvent) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_event_id"}},
		DoNothing: true,
	}).Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByStripeEventID retrieves a stored event by its processor event ID
func (r *paymentEventRepository) GetByStripeEventID(stripeEventID string) (*models.PaymentEvent, error) {
	var event models.PaymentEvent
	err := r.db.Where("stripe_event_id = ?", stripeEventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// MarkProcessed flags the event as handled
func (r *paymentEventRepository) MarkProcessed(id uint) error {
	now := time.Now()
	return r.db.Model(&models.PaymentEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": &now,
		}).Error
}

// MarkFailed records the processing error without consuming the event
func (r *paymentEventRepository) MarkFailed(id uint, processingError string) error {
	return r.db.Model(&models.PaymentEvent{}).Where("id = ?", id).
		Update("processing_error", processingError).Error
}

// ListRecent retrieves the newest stored events
func (r *paymentEventRepository) ListRecent(limit int) ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
