package repository

import (
	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// leadMagnetRepository implements the LeadMagnetRepository interface
type leadMagnetRepository struct {
	db *gorm.DB
}

// NewLeadMagnetRepository creates a new lead magnet repository instance
func NewLeadMagnetRepository(db *gorm.DB) LeadMagnetRepository {
	return &leadMagnetRepository{db: db}
}

// Create creates a new lead magnet in the database
func (r *leadMagnetRepository) Create(magnet *models.LeadMagnet) error {
	return r.db.Create(magnet).Error
}

// GetByID retrieves a lead magnet by its ID
func (r *leadMagnetRepository) GetByID(id uint) (*models.LeadMagnet, error) {
	var magnet models.LeadMagnet
	err := r.db.First(&magnet, id).Error
	if err != nil {
		return nil, err
	}
	return &magnet, nil
}

// GetBySlug retrieves a lead magnet by its slug
func (r *leadMagnetRepository) GetBySlug(slug string) (*models.LeadMagnet, error) {
	var magnet models.LeadMagnet
	err := r.db.Where("slug = ?", slug).First(&magnet).Error
	if err != nil {
		return nil, err
	}
	return &magnet, nil
}

// GetActive retrieves all active lead magnets
func (r *leadMagnetRepository) GetActive() ([]models.LeadMagnet, error) {
	var magnets []models.LeadMagnet
	err := r.db.Where("status = ?", models.LeadMagnetStatusActive).
		Order("created_at DESC").Find(&magnets).Error
	return magnets, err
}

// GetAll retrieves all lead magnets
func (r *leadMagnetRepository) GetAll() ([]models.LeadMagnet, error) {
	var magnets []models.LeadMagnet
	err := r.db.Order("created_at DESC").Find(&magnets).Error
	return magnets, err
}

// Update updates an existing lead magnet in the database
func (r *leadMagnetRepository) Update(magnet *models.LeadMagnet) error {
	return r.db.Save(magnet).Error
}

// Delete deletes a lead magnet by its ID
func (r *leadMagnetRepository) Delete(id uint) error {
	return r.db.Delete(&models.LeadMagnet{}, id).Error
}

// Upsert inserts the lead magnet or refreshes the row with the same slug.
// Download counters are left untouched so re-seeding never resets them.
func (r *leadMagnetRepository) Upsert(magnet *models.LeadMagnet) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "file_url", "file_key", "cover_image",
			"type", "is_paid", "price", "status",
		}),
	}).Create(magnet).Error
}

// RecordDownload stores the download row and bumps the magnet's counter
// atomically.
func (r *leadMagnetRepository) RecordDownload(download *models.LeadMagnetDownload) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(download).Error; err != nil {
			return err
		}
		return tx.Model(&models.LeadMagnet{}).Where("id = ?", download.LeadMagnetID).
			UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
	})
}

// CountDownloads returns the number of recorded downloads for a magnet
func (r *leadMagnetRepository) CountDownloads(magnetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadMagnetDownload{}).
		Where("lead_magnet_id = ?", magnetID).Count(&count).Error
	return count, err
}
