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

// PaymentInput is the create payload for a payment.
type PaymentInput struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	TransactionID *string   `json:"transaction_id"`
}

// PaymentUpdate carries the mutable fields of a payment.
type PaymentUpdate struct {
	Status        string  `json:"status" binding:"required"`
	TransactionID *string `json:"transaction_id"`
}

// PaymentService manages payment records. Each order carries at most one.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo, logger: logger}
}

// Create records a payment against an existing order. The database rejects
// a second payment for the same order.
func (s *PaymentService) Create(ctx context.Context, in PaymentInput) (*models.Payment, *ServiceError) {
	if _, err := s.orderRepo.FindByID(ctx, in.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("Order does not exist")
		}
		return nil, internal("Failed to verify order")
	}

	payment := &models.Payment{
		OrderID:       in.OrderID,
		PaymentMethod: in.PaymentMethod,
		Status:        models.PaymentStatusPending,
		Amount:        in.Amount,
		TransactionID: in.TransactionID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Order already has a payment")
		}
		s.logger.Error("Failed to create payment", zap.Error(err))
		return nil, internal("Failed to create payment")
	}
	return payment, nil
}

// Get returns one payment with its order preloaded.
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*models.Payment, *ServiceError) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Payment not found")
		}
		return nil, internal("Failed to fetch payment")
	}
	return payment, nil
}

// List returns payments, optionally scoped to one order.
func (s *PaymentService) List(ctx context.Context, orderID *uuid.UUID) ([]models.Payment, *ServiceError) {
	payments, err := s.paymentRepo.FindAll(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, internal("Failed to fetch payments")
	}
	return payments, nil
}

// Update transitions a payment's status. Unknown statuses are rejected.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, in PaymentUpdate) (*models.Payment, *ServiceError) {
	if !models.ValidPaymentStatus(in.Status) {
		return nil, badRequest("Invalid payment status")
	}

	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Payment not found")
		}
		return nil, internal("Failed to fetch payment")
	}

	payment.Status = in.Status
	if in.TransactionID != nil {
		payment.TransactionID = in.TransactionID
	}
	payment.Order = nil

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to update payment", zap.Error(err))
		return nil, internal("Failed to update payment")
	}
	return payment, nil
}

// Delete removes a payment record.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Payment not found")
		}
		s.logger.Error("Failed to delete payment", zap.Error(err))
		return internal("Failed to delete payment")
	}
	return nil
}
