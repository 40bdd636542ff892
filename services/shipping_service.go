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

// ShippingInput is the create/update payload for a shipping method.
type ShippingInput struct {
	Name               string  `json:"name" binding:"required"`
	BasePrice          float64 `json:"base_price" binding:"min=0"`
	PricePerKilo       float64 `json:"price_per_kilo" binding:"min=0"`
	EstimatedDays      int     `json:"estimated_days" binding:"min=0"`
	CarrierServiceCode string  `json:"carrier_service_code"`
}

// ShippingService manages the catalog of shipping methods.
type ShippingService struct {
	shipRepo repository.ShippingRepository
	logger   *zap.Logger
}

// NewShippingService creates a new ShippingService.
func NewShippingService(shipRepo repository.ShippingRepository, logger *zap.Logger) *ShippingService {
	return &ShippingService{shipRepo: shipRepo, logger: logger}
}

// Create stores a new shipping method.
func (s *ShippingService) Create(ctx context.Context, in ShippingInput) (*models.Shipping, *ServiceError) {
	shipping := &models.Shipping{
		Name:               in.Name,
		BasePrice:          in.BasePrice,
		PricePerKilo:       in.PricePerKilo,
		EstimatedDays:      in.EstimatedDays,
		CarrierServiceCode: in.CarrierServiceCode,
	}
	if err := s.shipRepo.Create(ctx, shipping); err != nil {
		s.logger.Error("Failed to create shipping method", zap.Error(err))
		return nil, internal("Failed to create shipping method")
	}
	return shipping, nil
}

// Get returns one shipping method.
func (s *ShippingService) Get(ctx context.Context, id uuid.UUID) (*models.Shipping, *ServiceError) {
	shipping, err := s.shipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Shipping method not found")
		}
		return nil, internal("Failed to fetch shipping method")
	}
	return shipping, nil
}

// List returns all shipping methods.
func (s *ShippingService) List(ctx context.Context) ([]models.Shipping, *ServiceError) {
	methods, err := s.shipRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list shipping methods", zap.Error(err))
		return nil, internal("Failed to fetch shipping methods")
	}
	return methods, nil
}

// Update overwrites a shipping method's fields. Existing orders keep the
// cost they were priced with.
func (s *ShippingService) Update(ctx context.Context, id uuid.UUID, in ShippingInput) (*models.Shipping, *ServiceError) {
	shipping, err := s.shipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Shipping method not found")
		}
		return nil, internal("Failed to fetch shipping method")
	}

	shipping.Name = in.Name
	shipping.BasePrice = in.BasePrice
	shipping.PricePerKilo = in.PricePerKilo
	shipping.EstimatedDays = in.EstimatedDays
	shipping.CarrierServiceCode = in.CarrierServiceCode

	if err := s.shipRepo.Update(ctx, shipping); err != nil {
		s.logger.Error("Failed to update shipping method", zap.Error(err))
		return nil, internal("Failed to update shipping method")
	}
	return shipping, nil
}

// Delete removes a shipping method.
func (s *ShippingService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.shipRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Shipping method not found")
		}
		s.logger.Error("Failed to delete shipping method", zap.Error(err))
		return internal("Failed to delete shipping method")
	}
	return nil
}
