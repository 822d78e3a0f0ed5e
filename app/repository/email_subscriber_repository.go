package repository

import (
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emailSubscriberRepository implements the EmailSubscriberRepository interface
type emailSubscriberRepository struct {
	db *gorm.DB
}

// NewEmailSubscriberRepository creates a new email subscriber repository instance
func NewEmailSubscriberRepository(db *gorm.DB) EmailSubscriberRepository {
	return &emailSubscriberRepository{db: db}
}

// Upsert inserts the subscriber or refreshes the existing row for the same
// email. Repeated sign-ups never duplicate and reactivate unsubscribed rows.
func (r *emailSubscriberRepository) Upsert(subscriber *models.EmailSubscriber) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "source", "status", "tags", "metadata",
		}),
	}).Create(subscriber).Error
}

// GetByEmail retrieves a subscriber by email address
func (r *emailSubscriberRepository) GetByEmail(email string) (*models.EmailSubscriber, error) {
	var subscriber models.EmailSubscriber
	err := r.db.Where("email = ?", email).First(&subscriber).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// GetActive retrieves active subscribers with pagination
func (r *emailSubscriberRepository) GetActive(offset, limit int) ([]models.EmailSubscriber, error) {
	var subscribers []models.EmailSubscriber
	err := r.db.Where("status = ?", models.SubscriberStatusActive).
		Order("subscribed_at DESC").Offset(offset).Limit(limit).Find(&subscribers).Error
	return subscribers, err
}

// Unsubscribe marks a subscriber as unsubscribed and records the time
func (r *emailSubscriberRepository) Unsubscribe(email string) error {
	now := time.Now()
	return r.db.Model(&models.EmailSubscriber{}).Where("email = ?", email).
		Updates(map[string]interface{}{
			"status":          models.SubscriberStatusUnsubscribed,
			"unsubscribed_at": &now,
		}).Error
}

// Count returns the total number of subscribers
func (r *emailSubscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.EmailSubscriber{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active subscribers
func (r *emailSubscriberRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.EmailSubscriber{}).
		Where("status = ?", models.SubscriberStatusActive).Count(&count).Error
	return count, err
}
