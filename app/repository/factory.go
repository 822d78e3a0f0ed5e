package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetBlogPostRepository returns the blog post repository instance
func (f *Factory) GetBlogPostRepository() BlogPostRepository {
	return f.GetRepositories().BlogPost
}

// GetSubscriberRepository returns the email subscriber repository instance
func (f *Factory) GetSubscriberRepository() EmailSubscriberRepository {
	return f.GetRepositories().Subscriber
}

// GetLeadMagnetRepository returns the lead magnet repository instance
func (f *Factory) GetLeadMagnetRepository() LeadMagnetRepository {
	return f.GetRepositories().LeadMagnet
}

// GetProductRepository returns the product repository instance
func (f *Factory) GetProductRepository() ProductRepository {
	return f.GetRepositories().Product
}

// GetOrderRepository returns the order repository instance
func (f *Factory) GetOrderRepository() OrderRepository {
	return f.GetRepositories().Order
}

// GetPaymentEventRepository returns the payment event repository instance
func (f *Factory) GetPaymentEventRepository() PaymentEventRepository {
	return f.GetRepositories().PaymentEvent
}

// GetCoachUserRepository returns the coach user repository instance
func (f *Factory) GetCoachUserRepository() CoachUserRepository {
	return f.GetRepositories().CoachUser
}

// GetCourseLessonRepository returns the course lesson repository instance
func (f *Factory) GetCourseLessonRepository() CourseLessonRepository {
	return f.GetRepositories().CourseLesson
}

// GetCacheRepository returns the cache repository instance
func (f *Factory) GetCacheRepository() CacheRepository {
	return f.GetRepositories().Cache
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
