package repository

import (
	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// coachUserRepository implements the CoachUserRepository interface
type coachUserRepository struct {
	db *gorm.DB
}

// NewCoachUserRepository creates a new coach user repository instance
func NewCoachUserRepository(db *gorm.DB) CoachUserRepository {
	return &coachUserRepository{db: db}
}

// GetOrCreate returns the tracking row for the email, inserting a fresh one
// with a zero message count on first contact. Racing registrations collapse
// onto the same row via the unique email index.
func (r *coachUserRepository) GetOrCreate(email string) (*models.CoachUser, error) {
	user := &models.CoachUser{Email: email}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.GetByEmail(email)
}

// GetByEmail retrieves the tracking row for an email address
func (r *coachUserRepository) GetByEmail(email string) (*models.CoachUser, error) {
	var user models.CoachUser
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementMessageCount bumps the counter atomically and returns the row
// after the update. Concurrent increments serialize on the database row, so
// the counter never loses updates.
func (r *coachUserRepository) IncrementMessageCount(email string) (*models.CoachUser, error) {
	if _, err := r.GetOrCreate(email); err != nil {
		return nil, err
	}
	err := r.db.Model(&models.CoachUser{}).Where("email = ?", email).
		UpdateColumn("message_count", gorm.Expr("message_count + 1")).Error
	if err != nil {
		return nil, err
	}
	return r.GetByEmail(email)
}

// RaiseMessageCount lifts the counter to at least count. Used when a visitor
// registers and brings an anonymous message count with them; the stored
// value never goes down.
func (r *coachUserRepository) RaiseMessageCount(email string, count int) error {
	if _, err := r.GetOrCreate(email); err != nil {
		return err
	}
	return r.db.Model(&models.CoachUser{}).
		Where("email = ? AND message_count < ?", email, count).
		UpdateColumn("message_count", count).Error
}

// GrantUnlimitedAccess sets the unlimited flag. The flag is never cleared
// here; access once granted stays granted.
func (r *coachUserRepository) GrantUnlimitedAccess(email string) error {
	if _, err := r.GetOrCreate(email); err != nil {
		return err
	}
	return r.db.Model(&models.CoachUser{}).Where("email = ?", email).
		Update("has_unlimited_access", true).Error
}

// Count returns the total number of tracked coach users
func (r *coachUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.CoachUser{}).Count(&count).Error
	return count, err
}
