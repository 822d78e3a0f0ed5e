package repository

import (
	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// courseLessonRepository implements the CourseLessonRepository interface
type courseLessonRepository struct {
	db *gorm.DB
}

// NewCourseLessonRepository creates a new course lesson repository instance
func NewCourseLessonRepository(db *gorm.DB) CourseLessonRepository {
	return &courseLessonRepository{db: db}
}

// Create creates a new course lesson in the database
func (r *courseLessonRepository) Create(lesson *models.CourseLesson) error {
	return r.db.Create(lesson).Error
}

// GetByID retrieves a course lesson by its ID
func (r *courseLessonRepository) GetByID(id uint) (*models.CourseLesson, error) {
	var lesson models.CourseLesson
	err := r.db.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetByProductSlug retrieves the lessons of a course in display order
func (r *courseLessonRepository) GetByProductSlug(productSlug string) ([]models.CourseLesson, error) {
	var lessons []models.CourseLesson
	err := r.db.Where("product_slug = ?", productSlug).
		Order("module_number ASC, sort_order ASC").Find(&lessons).Error
	return lessons, err
}

// Update updates an existing course lesson in the database
func (r *courseLessonRepository) Update(lesson *models.CourseLesson) error {
	return r.db.Save(lesson).Error
}

// Delete deletes a course lesson by its ID
func (r *courseLessonRepository) Delete(id uint) error {
	return r.db.Delete(&models.CourseLesson{}, id).Error
}

// MarkComplete records lesson completion for a user. Marking the same lesson
// twice is a no-op thanks to the unique user+lesson index.
func (r *courseLessonRepository) MarkComplete(userID, lessonID uint, productSlug string) error {
	progress := &models.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		ProductSlug: productSlug,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(progress).Error
}

// GetProgress retrieves a user's completed lessons for a course
func (r *courseLessonRepository) GetProgress(userID uint, productSlug string) ([]models.LessonProgress, error) {
	var progress []models.LessonProgress
	err := r.db.Where("user_id = ? AND product_slug = ?", userID, productSlug).
		Find(&progress).Error
	return progress, err
}

// CountByProductSlug returns the number of lessons in a course
func (r *courseLessonRepository) CountByProductSlug(productSlug string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CourseLesson{}).
		Where("product_slug = ?", productSlug).Count(&count).Error
	return count, err
}
