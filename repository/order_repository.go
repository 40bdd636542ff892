package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// OrderRepository defines data-access operations for orders, their items and
// the attached payment.
type OrderRepository interface {
	// CreateWithItems persists the order, its items and its payment as one
	// transaction. Nothing is written when any part fails.
	CreateWithItems(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	// OwnerID fetches only the owning-user column of an order.
	OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// PaymentStatus returns the status of the order's payment, or "" when no
	// payment record exists.
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (string, error)

	CreateItem(ctx context.Context, item *models.OrderItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	FindItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	UpdateItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// ItemOwnerID resolves an order item's owner transitively through its
	// order.
	ItemOwnerID(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		Preload("Shipping").
		Preload("Payment").
		First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		Preload("Shipping").
		Preload("Payment").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		Preload("Shipping").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "Payment", "Shipping", "User", "Address").Save(order).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormOrderRepository) ItemOwnerID(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("orders.user_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ?", itemID).
		Take(&owner).Error
	return owner, err
}

func (r *GormOrderRepository) OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&owner).Error
	return owner, err
}

func (r *GormOrderRepository) PaymentStatus(ctx context.Context, orderID uuid.UUID) (string, error) {
	var status string
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("status").
		Where("order_id = ?", orderID).
		Take(&status).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	return status, err
}

func (r *GormOrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormOrderRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("ProductSize.Product").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormOrderRepository) FindItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("ProductSize.Product").
		Where("order_id = ?", orderID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormOrderRepository) UpdateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit("ProductSize", "Order").Save(item).Error
}

func (r *GormOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
