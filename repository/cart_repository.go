package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// CartRepository defines data-access operations for carts and their items.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindAll(ctx context.Context) ([]models.Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// OwnerID fetches only the owning-user column of a cart.
	OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	CreateItem(ctx context.Context, item *models.CartItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	FindItemsByCartID(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	UpdateItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// ItemOwnerID resolves a cart item's owner transitively through its cart.
	ItemOwnerID(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		Where("user_id = ?", userID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCartRepository) FindAll(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.ProductSize.Product").
		Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Cart{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCartRepository) OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&owner).Error
	return owner, err
}

func (r *GormCartRepository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormCartRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("ProductSize").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) FindItemsByCartID(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("ProductSize").
		Where("cart_id = ?", cartID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) UpdateItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCartRepository) ItemOwnerID(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("carts.user_id").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ?", itemID).
		Take(&owner).Error
	return owner, err
}
