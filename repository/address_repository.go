package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// AddressRepository defines data-access operations for addresses. All writes
// that set the default flag clear it on the owner's other addresses in the
// same transaction, so at most one default ever exists per user.
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, id, userID uuid.UUID) error
	// OwnerID fetches only the owning-user column of an address.
	OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository.
func NewGormAddressRepository(db *gorm.DB) AddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaults(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var a models.Address
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *GormAddressRepository) Update(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaults(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAddressRepository) SetDefault(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefaults(tx, userID); err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

func (r *GormAddressRepository) OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Address{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&owner).Error
	return owner, err
}

func clearDefaults(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
