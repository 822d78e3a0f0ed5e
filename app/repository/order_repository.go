package repository

import (
	"time"

	"github.com/shauncritzer/rewired/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by its ID
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Product").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber retrieves an order by its order number
func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Product").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetBySessionID retrieves an order by its processor checkout session ID
func (r *orderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Product").Where("stripe_session_id = ?", sessionID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByEmail retrieves all orders for an email address
func (r *orderRepository) GetByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Product").Where("email = ?", email).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetCompletedByEmail retrieves paid orders for an email address
func (r *orderRepository) GetCompletedByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Product").
		Where("email = ? AND status = ?", email, models.OrderStatusCompleted).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// HasCompletedOrder checks whether the email has paid for the given product slug
func (r *orderRepository) HasCompletedOrder(email, productSlug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.email = ? AND orders.status = ? AND products.slug = ?",
			email, models.OrderStatusCompleted, productSlug).
		Count(&count).Error
	return count > 0, err
}

// Update updates an existing order in the database
func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// MarkCompleted transitions a pending order to completed with the payment reference
func (r *orderRepository) MarkCompleted(id uint, paymentIntentID string) error {
	now := time.Now()
	return r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                   models.OrderStatusCompleted,
			"stripe_payment_intent_id": paymentIntentID,
			"completed_at":             &now,
		}).Error
}

// List retrieves orders newest first with pagination
func (r *orderRepository) List(offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Product").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

// Count returns the total number of orders
func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}
