package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/repository"
)

// AddressInput is the create/update payload for an address.
type AddressInput struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// AddressService manages a user's addresses and the single-default
// invariant.
type AddressService struct {
	addrRepo repository.AddressRepository
	logger   *zap.Logger
}

// NewAddressService creates a new AddressService.
func NewAddressService(addrRepo repository.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{addrRepo: addrRepo, logger: logger}
}

// Create stores a new address for userID. When it is flagged default, the
// user's other defaults are cleared in the same transaction.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, in AddressInput) (*models.Address, *ServiceError) {
	address := &models.Address{
		UserID:     userID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
		PostalCode: in.PostalCode,
		Phone:      in.Phone,
		IsDefault:  in.IsDefault,
	}
	if err := s.addrRepo.Create(ctx, address); err != nil {
		s.logger.Error("Failed to create address", zap.Error(err))
		return nil, internal("Failed to create address")
	}
	return address, nil
}

// ListForUser returns the user's addresses, default first.
func (s *AddressService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Address, *ServiceError) {
	addresses, err := s.addrRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list addresses", zap.Error(err))
		return nil, internal("Failed to fetch addresses")
	}
	return addresses, nil
}

// Update overwrites an address's fields. The owner never changes.
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, in AddressInput) (*models.Address, *ServiceError) {
	address, err := s.addrRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Address not found")
		}
		return nil, internal("Failed to fetch address")
	}

	address.Street = in.Street
	address.City = in.City
	address.State = in.State
	address.Country = in.Country
	address.PostalCode = in.PostalCode
	address.Phone = in.Phone
	address.IsDefault = in.IsDefault

	if err := s.addrRepo.Update(ctx, address); err != nil {
		s.logger.Error("Failed to update address", zap.Error(err))
		return nil, internal("Failed to update address")
	}
	return address, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.addrRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Address not found")
		}
		s.logger.Error("Failed to delete address", zap.Error(err))
		return internal("Failed to delete address")
	}
	return nil
}

// SetDefault marks one address as the user's default and clears the flag on
// every other address the user owns.
func (s *AddressService) SetDefault(ctx context.Context, id uuid.UUID) *ServiceError {
	address, err := s.addrRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Address not found")
		}
		return internal("Failed to fetch address")
	}

	if err := s.addrRepo.SetDefault(ctx, address.ID, address.UserID); err != nil {
		s.logger.Error("Failed to set default address", zap.Error(err))
		return internal("Failed to set default address")
	}
	return nil
}
