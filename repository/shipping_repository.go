package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// ShippingRepository defines data-access operations for shipping methods.
type ShippingRepository interface {
	Create(ctx context.Context, shipping *models.Shipping) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error)
	FindAll(ctx context.Context) ([]models.Shipping, error)
	Update(ctx context.Context, shipping *models.Shipping) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormShippingRepository implements ShippingRepository using GORM.
type GormShippingRepository struct {
	db *gorm.DB
}

// NewGormShippingRepository creates a new GormShippingRepository.
func NewGormShippingRepository(db *gorm.DB) ShippingRepository {
	return &GormShippingRepository{db: db}
}

func (r *GormShippingRepository) Create(ctx context.Context, shipping *models.Shipping) error {
	return r.db.WithContext(ctx).Create(shipping).Error
}

func (r *GormShippingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shipping, error) {
	var s models.Shipping
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormShippingRepository) FindAll(ctx context.Context) ([]models.Shipping, error) {
	var shippings []models.Shipping
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&shippings).Error; err != nil {
		return nil, err
	}
	return shippings, nil
}

func (r *GormShippingRepository) Update(ctx context.Context, shipping *models.Shipping) error {
	return r.db.WithContext(ctx).Save(shipping).Error
}

func (r *GormShippingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Shipping{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
