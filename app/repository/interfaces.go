package repository

import (
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// BlogPostRepository defines the interface for blog-related database operations
type BlogPostRepository interface {
	Create(post *models.BlogPost) error
	GetByID(id uint) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	GetPublished(offset, limit int) ([]models.BlogPost, error)
	GetPublishedByCategory(category string, offset, limit int) ([]models.BlogPost, error)
	GetAll(offset, limit int) ([]models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id uint) error
	Count() (int64, error)
	CountPublished() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
	IncrementViewCount(id uint) error
}

// EmailSubscriberRepository defines the interface for subscriber operations
type EmailSubscriberRepository interface {
	Upsert(subscriber *models.EmailSubscriber) error
	GetByEmail(email string) (*models.EmailSubscriber, error)
	GetActive(offset, limit int) ([]models.EmailSubscriber, error)
	Unsubscribe(email string) error
	Count() (int64, error)
	CountActive() (int64, error)
}

// LeadMagnetRepository defines the interface for lead magnet operations
type LeadMagnetRepository interface {
	Create(magnet *models.LeadMagnet) error
	GetByID(id uint) (*models.LeadMagnet, error)
	GetBySlug(slug string) (*models.LeadMagnet, error)
	GetActive() ([]models.LeadMagnet, error)
	GetAll() ([]models.LeadMagnet, error)
	Update(magnet *models.LeadMagnet) error
	Delete(id uint) error
	Upsert(magnet *models.LeadMagnet) error
	RecordDownload(download *models.LeadMagnetDownload) error
	CountDownloads(magnetID uint) (int64, error)
}

// ProductRepository defines the interface for product operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetActive() ([]models.Product, error)
	GetAll() ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	Upsert(product *models.Product) error
	Count() (int64, error)
}

// OrderRepository defines the interface for order operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetBySessionID(sessionID string) (*models.Order, error)
	GetByEmail(email string) ([]models.Order, error)
	GetCompletedByEmail(email string) ([]models.Order, error)
	HasCompletedOrder(email, productSlug string) (bool, error)
	Update(order *models.Order) error
	MarkCompleted(id uint, paymentIntentID string) error
	List(offset, limit int) ([]models.Order, error)
	Count() (int64, error)
}

// PaymentEventRepository defines the interface for webhook event storage
type PaymentEventRepository interface {
	// InsertIfAbsent stores the event and reports whether this delivery was
	// the first one for its processor event ID.
	InsertIfAbsent(event *models.PaymentEvent) (bool, error)
	GetByStripeEventID(stripeEventID string) (*models.PaymentEvent, error)
	MarkProcessed(id uint) error
	MarkFailed(id uint, processingError string) error
	ListRecent(limit int) ([]models.PaymentEvent, error)
}

// CoachUserRepository defines the interface for AI coach usage tracking
type CoachUserRepository interface {
	GetOrCreate(email string) (*models.CoachUser, error)
	GetByEmail(email string) (*models.CoachUser, error)
	IncrementMessageCount(email string) (*models.CoachUser, error)
	RaiseMessageCount(email string, count int) error
	GrantUnlimitedAccess(email string) error
	Count() (int64, error)
}

// CourseLessonRepository defines the interface for course content operations
type CourseLessonRepository interface {
	Create(lesson *models.CourseLesson) error
	GetByID(id uint) (*models.CourseLesson, error)
	GetByProductSlug(productSlug string) ([]models.CourseLesson, error)
	Update(lesson *models.CourseLesson) error
	Delete(id uint) error
	MarkComplete(userID, lessonID uint, productSlug string) error
	GetProgress(userID uint, productSlug string) ([]models.LessonProgress, error)
	CountByProductSlug(productSlug string) (int64, error)
}

// CacheRepository defines the interface for Redis keyspace maintenance
type CacheRepository interface {
	GetValue(key string) (string, error)
	GetTTL(key string) (time.Duration, error)
	FindKeysByPatterns(patterns []string) ([]string, error)
	DeleteKeys(keys []string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	BlogPost     BlogPostRepository
	Subscriber   EmailSubscriberRepository
	LeadMagnet   LeadMagnetRepository
	Product      ProductRepository
	Order        OrderRepository
	PaymentEvent PaymentEventRepository
	CoachUser    CoachUserRepository
	CourseLesson CourseLessonRepository
	Cache        CacheRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		BlogPost:     NewBlogPostRepository(db),
		Subscriber:   NewEmailSubscriberRepository(db),
		LeadMagnet:   NewLeadMagnetRepository(db),
		Product:      NewProductRepository(db),
		Order:        NewOrderRepository(db),
		PaymentEvent: NewPaymentEventRepository(db),
		CoachUser:    NewCoachUserRepository(db),
		CourseLesson: NewCourseLessonRepository(db),
		Cache:        NewCacheRepository(),
	}
}
