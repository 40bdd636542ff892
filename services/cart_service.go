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

// CartItemInput is the create payload for a cart item.
type CartItemInput struct {
	CartID        uuid.UUID `json:"cart_id" binding:"required"`
	ProductSizeID uuid.UUID `json:"product_size_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,gt=0"`
}

// CartItemUpdate carries the mutable fields of a cart item.
type CartItemUpdate struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// CartService manages carts and their items. Carts are created with the
// account, so the service only ever reads or empties them.
type CartService struct {
	cartRepo repository.CartRepository
	sizeRepo repository.ProductSizeRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repository.CartRepository, sizeRepo repository.ProductSizeRepository, logger *zap.Logger) *CartService {
	return &CartService{cartRepo: cartRepo, sizeRepo: sizeRepo, logger: logger}
}

// GetCart returns one cart with its items and their products.
func (s *CartService) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, *ServiceError) {
	cart, err := s.cartRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cart not found")
		}
		s.logger.Error("Failed to fetch cart", zap.Error(err))
		return nil, internal("Failed to fetch cart")
	}
	return cart, nil
}

// GetCartForUser returns the caller's own cart.
func (s *CartService) GetCartForUser(ctx context.Context, userID uuid.UUID) (*models.Cart, *ServiceError) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cart not found")
		}
		s.logger.Error("Failed to fetch cart", zap.Error(err))
		return nil, internal("Failed to fetch cart")
	}
	return cart, nil
}

// ListCarts returns every cart.
func (s *CartService) ListCarts(ctx context.Context) ([]models.Cart, *ServiceError) {
	carts, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list carts", zap.Error(err))
		return nil, internal("Failed to fetch carts")
	}
	return carts, nil
}

// DeleteCart removes a cart and its items.
func (s *CartService) DeleteCart(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.cartRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Cart not found")
		}
		s.logger.Error("Failed to delete cart", zap.Error(err))
		return internal("Failed to delete cart")
	}
	return nil
}

// AddItem puts a product size into a cart. Repeated adds of the same size
// fold into the existing line.
func (s *CartService) AddItem(ctx context.Context, in CartItemInput) (*models.CartItem, *ServiceError) {
	if _, err := s.sizeRepo.FindByID(ctx, in.ProductSizeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("Product size does not exist")
		}
		return nil, internal("Failed to verify product size")
	}

	existing, err := s.cartRepo.FindItemsByCartID(ctx, in.CartID)
	if err != nil {
		s.logger.Error("Failed to fetch cart items", zap.Error(err))
		return nil, internal("Failed to fetch cart items")
	}
	for i := range existing {
		if existing[i].ProductSizeID == in.ProductSizeID {
			existing[i].Quantity += in.Quantity
			existing[i].ProductSize = nil
			if err := s.cartRepo.UpdateItem(ctx, &existing[i]); err != nil {
				s.logger.Error("Failed to update cart item", zap.Error(err))
				return nil, internal("Failed to update cart item")
			}
			return &existing[i], nil
		}
	}

	item := &models.CartItem{
		CartID:        in.CartID,
		ProductSizeID: in.ProductSizeID,
		Quantity:      in.Quantity,
	}
	if err := s.cartRepo.CreateItem(ctx, item); err != nil {
		s.logger.Error("Failed to create cart item", zap.Error(err))
		return nil, internal("Failed to create cart item")
	}
	return item, nil
}

// GetItem returns one cart item.
func (s *CartService) GetItem(ctx context.Context, id uuid.UUID) (*models.CartItem, *ServiceError) {
	item, err := s.cartRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cart item not found")
		}
		return nil, internal("Failed to fetch cart item")
	}
	return item, nil
}

// ListItems returns the items of one cart.
func (s *CartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, *ServiceError) {
	items, err := s.cartRepo.FindItemsByCartID(ctx, cartID)
	if err != nil {
		s.logger.Error("Failed to list cart items", zap.Error(err))
		return nil, internal("Failed to fetch cart items")
	}
	return items, nil
}

// UpdateItem changes a cart line's quantity.
func (s *CartService) UpdateItem(ctx context.Context, id uuid.UUID, in CartItemUpdate) (*models.CartItem, *ServiceError) {
	item, err := s.cartRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Cart item not found")
		}
		return nil, internal("Failed to fetch cart item")
	}

	item.Quantity = in.Quantity
	item.ProductSize = nil
	if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
		s.logger.Error("Failed to update cart item", zap.Error(err))
		return nil, internal("Failed to update cart item")
	}
	return item, nil
}

// DeleteItem removes one line from a cart.
func (s *CartService) DeleteItem(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.cartRepo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Cart item not found")
		}
		s.logger.Error("Failed to delete cart item", zap.Error(err))
		return internal("Failed to delete cart item")
	}
	return nil
}
