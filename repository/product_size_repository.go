package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// ProductSizeRepository defines data-access operations for product sizes.
type ProductSizeRepository interface {
	Create(ctx context.Context, size *models.ProductSize) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductSize, error)
	// FindByIDs batch-resolves sizes with their products preloaded. Missing
	// ids are simply absent from the result; callers detect them by count.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error)
	FindAll(ctx context.Context) ([]models.ProductSize, error)
	Update(ctx context.Context, size *models.ProductSize) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormProductSizeRepository implements ProductSizeRepository using GORM.
type GormProductSizeRepository struct {
	db *gorm.DB
}

// NewGormProductSizeRepository creates a new GormProductSizeRepository.
func NewGormProductSizeRepository(db *gorm.DB) ProductSizeRepository {
	return &GormProductSizeRepository{db: db}
}

func (r *GormProductSizeRepository) Create(ctx context.Context, size *models.ProductSize) error {
	return r.db.WithContext(ctx).Create(size).Error
}

func (r *GormProductSizeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
	var s models.ProductSize
	if err := r.db.WithContext(ctx).Preload("Product").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormProductSizeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id IN ?", ids).
		Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *GormProductSizeRepository) FindAll(ctx context.Context) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	if err := r.db.WithContext(ctx).Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *GormProductSizeRepository) Update(ctx context.Context, size *models.ProductSize) error {
	return r.db.WithContext(ctx).Save(size).Error
}

func (r *GormProductSizeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ProductSize{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
