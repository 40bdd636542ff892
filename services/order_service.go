package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/providers"
	"tienda-backend/repository"
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	ProductSizeID uuid.UUID `json:"product_size_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the checkout payload. The unit price of every line
// is recomputed server-side from the resolved product; client-supplied
// prices are never trusted.
type CreateOrderRequest struct {
	ShippingID    uuid.UUID        `json:"shipping_id" binding:"required"`
	AddressID     *uuid.UUID       `json:"address_id"`
	PaymentMethod string           `json:"payment_method"`
	Items         []OrderItemInput `json:"items" binding:"required,dive"`
}

// Quote is the priced breakdown of an order before it is committed.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`
	WeightKg     float64 `json:"weight_kg"`

	lines []models.OrderItem
}

// Origin identifies the warehouse the store ships from.
type Origin struct {
	PostalCode string
	Province   string
}

// OrderService prices and places orders.
type OrderService struct {
	orderRepo repository.OrderRepository
	sizeRepo  repository.ProductSizeRepository
	shipRepo  repository.ShippingRepository
	addrRepo  repository.AddressRepository
	provider  providers.RateProvider
	origin    Origin
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	sizeRepo repository.ProductSizeRepository,
	shipRepo repository.ShippingRepository,
	addrRepo repository.AddressRepository,
	provider providers.RateProvider,
	origin Origin,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		sizeRepo:  sizeRepo,
		shipRepo:  shipRepo,
		addrRepo:  addrRepo,
		provider:  provider,
		origin:    origin,
		logger:    logger,
	}
}

// PriceOrder resolves the requested lines and computes subtotal, shipping
// cost and total without writing anything.
//
// Shipping cost is flat-rate (base + per-kilo × weight) unless the shipping
// method carries a carrier service code, in which case a live quote is
// requested for the billable weight (the greater of actual and volumetric
// weight).
func (s *OrderService) PriceOrder(ctx context.Context, req *CreateOrderRequest) (*Quote, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, badRequest("At least one item is required")
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, badRequest("Item quantity must be at least 1")
		}
		ids = append(ids, item.ProductSizeID)
	}

	sizes, err := s.sizeRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve product sizes", zap.Error(err))
		return nil, internal("Failed to resolve order items")
	}
	sizeByID := make(map[uuid.UUID]models.ProductSize, len(sizes))
	for _, size := range sizes {
		sizeByID[size.ID] = size
	}

	quote := &Quote{}
	for _, item := range req.Items {
		size, ok := sizeByID[item.ProductSizeID]
		if !ok {
			return nil, badRequest("Product size not found: " + item.ProductSizeID.String())
		}
		if size.Product == nil {
			s.logger.Error("Product size missing parent product", zap.String("size_id", size.ID.String()))
			return nil, internal("Failed to resolve order items")
		}
		price := size.Product.Price
		if price < 0 {
			return nil, badRequest("Item price must not be negative")
		}

		quote.Subtotal += price * float64(item.Quantity)
		quote.WeightKg += size.Weight * float64(item.Quantity)
		quote.lines = append(quote.lines, models.OrderItem{
			ProductID:     size.ProductID,
			ProductSizeID: size.ID,
			Quantity:      item.Quantity,
			Price:         price,
		})
	}

	shipping, err := s.shipRepo.FindByID(ctx, req.ShippingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("Shipping method not found")
		}
		s.logger.Error("Failed to resolve shipping method", zap.Error(err))
		return nil, internal("Failed to resolve shipping method")
	}

	cost, svcErr := s.shippingCost(ctx, shipping, req.AddressID, quote.WeightKg, sizeByID, req.Items)
	if svcErr != nil {
		return nil, svcErr
	}
	quote.ShippingCost = cost
	quote.Total = quote.Subtotal + quote.ShippingCost
	return quote, nil
}

// CreateOrder prices the request and persists the order, its item snapshots
// and a pending payment for the total, all in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*models.Order, *ServiceError) {
	quote, svcErr := s.PriceOrder(ctx, req)
	if svcErr != nil {
		return nil, svcErr
	}

	method := req.PaymentMethod
	if method == "" {
		method = "unspecified"
	}

	order := &models.Order{
		UserID:       userID,
		ShippingID:   req.ShippingID,
		AddressID:    req.AddressID,
		Subtotal:     quote.Subtotal,
		ShippingCost: quote.ShippingCost,
		Total:        quote.Total,
		Items:        quote.lines,
		Payment: &models.Payment{
			PaymentMethod: method,
			Status:        models.PaymentStatusPending,
			Amount:        quote.Total,
		},
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.Error(err))
		return nil, internal("Failed to create order")
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// shippingCost computes the cost for the selected method. Flat-rate mode
// needs no network calls; carrier-quoted mode derives the billable weight
// and asks the carrier for a live quote.
func (s *OrderService) shippingCost(
	ctx context.Context,
	shipping *models.Shipping,
	addressID *uuid.UUID,
	totalWeight float64,
	sizeByID map[uuid.UUID]models.ProductSize,
	items []OrderItemInput,
) (float64, *ServiceError) {
	if shipping.CarrierServiceCode == "" {
		return shipping.BasePrice + shipping.PricePerKilo*totalWeight, nil
	}

	if addressID == nil {
		return 0, badRequest("Carrier-quoted shipping requires a delivery address")
	}
	address, err := s.addrRepo.FindByID(ctx, *addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, badRequest("Delivery address not found")
		}
		s.logger.Error("Failed to resolve address", zap.Error(err))
		return 0, internal("Failed to resolve delivery address")
	}

	billable := totalWeight
	for _, item := range items {
		size := sizeByID[item.ProductSizeID]
		if size.Length == nil || size.Width == nil || size.Height == nil {
			continue
		}
		volumetric, err := s.provider.VolumetricWeight(ctx, *size.Length, *size.Width, *size.Height)
		if err != nil {
			s.logger.Error("Volumetric weight lookup failed", zap.Error(err))
			return 0, upstream("Shipping carrier unavailable")
		}
		if volumetric > billable {
			billable = volumetric
		}
	}

	cost, err := s.provider.DeliveryCost(ctx, providers.QuoteRequest{
		OriginPostalCode:      s.origin.PostalCode,
		DestinationPostalCode: address.PostalCode,
		OriginProvince:        s.origin.Province,
		DestinationProvince:   address.State,
		WeightKg:              billable,
	})
	if err != nil {
		s.logger.Error("Delivery cost quote failed", zap.Error(err))
		return 0, upstream("Shipping carrier unavailable")
	}
	return cost, nil
}

// GetOrder fetches one order with items, shipping and payment.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Error(err))
		return nil, internal("Failed to fetch order")
	}
	return order, nil
}

// ListOrders returns every order (admin listing).
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}

// ListUserOrders returns one user's orders.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *ServiceError) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user orders", zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}

// UpdateOrderShipping changes an order's shipping method. Totals are not
// recomputed; the order keeps the price agreed at checkout.
func (s *OrderService) UpdateOrderShipping(ctx context.Context, id, shippingID uuid.UUID) (*models.Order, *ServiceError) {
	order, svcErr := s.GetOrder(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if _, err := s.shipRepo.FindByID(ctx, shippingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("Shipping method not found")
		}
		return nil, internal("Failed to resolve shipping method")
	}

	order.ShippingID = shippingID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.Error(err))
		return nil, internal("Failed to update order")
	}
	return order, nil
}

// DeleteOrder removes an order and, by cascade, its items.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Order not found")
		}
		s.logger.Error("Failed to delete order", zap.Error(err))
		return internal("Failed to delete order")
	}
	return nil
}

// ---- order items ----

// OrderItemUpdate carries the mutable fields of an order item.
type OrderItemUpdate struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"min=0"`
}

// AddOrderItem appends an item to an existing, unfrozen order. The product
// id is derived from the resolved size, never taken from the caller.
func (s *OrderService) AddOrderItem(ctx context.Context, orderID, sizeID uuid.UUID, quantity int, price float64) (*models.OrderItem, *ServiceError) {
	if quantity < 1 {
		return nil, badRequest("Item quantity must be at least 1")
	}
	if price < 0 {
		return nil, badRequest("Item price must not be negative")
	}
	if svcErr := s.ensureOrderMutable(ctx, orderID); svcErr != nil {
		return nil, svcErr
	}

	size, err := s.sizeRepo.FindByID(ctx, sizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product size not found")
		}
		return nil, internal("Failed to resolve product size")
	}

	item := &models.OrderItem{
		OrderID:       orderID,
		ProductID:     size.ProductID,
		ProductSizeID: size.ID,
		Quantity:      quantity,
		Price:         price,
	}
	if err := s.orderRepo.CreateItem(ctx, item); err != nil {
		s.logger.Error("Failed to create order item", zap.Error(err))
		return nil, internal("Failed to create order item")
	}
	return item, nil
}

// UpdateOrderItem changes quantity and price of an item on an unfrozen order.
func (s *OrderService) UpdateOrderItem(ctx context.Context, id uuid.UUID, upd OrderItemUpdate) (*models.OrderItem, *ServiceError) {
	if upd.Quantity < 1 {
		return nil, badRequest("Item quantity must be at least 1")
	}
	if upd.Price < 0 {
		return nil, badRequest("Item price must not be negative")
	}

	item, err := s.orderRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order item not found")
		}
		return nil, internal("Failed to fetch order item")
	}
	if svcErr := s.ensureOrderMutable(ctx, item.OrderID); svcErr != nil {
		return nil, svcErr
	}

	item.Quantity = upd.Quantity
	item.Price = upd.Price
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		s.logger.Error("Failed to update order item", zap.Error(err))
		return nil, internal("Failed to update order item")
	}
	return item, nil
}

// DeleteOrderItem removes an item from an unfrozen order.
func (s *OrderService) DeleteOrderItem(ctx context.Context, id uuid.UUID) *ServiceError {
	item, err := s.orderRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Order item not found")
		}
		return internal("Failed to fetch order item")
	}
	if svcErr := s.ensureOrderMutable(ctx, item.OrderID); svcErr != nil {
		return svcErr
	}

	if err := s.orderRepo.DeleteItem(ctx, id); err != nil {
		s.logger.Error("Failed to delete order item", zap.Error(err))
		return internal("Failed to delete order item")
	}
	return nil
}

// GetOrderItem fetches one order item.
func (s *OrderService) GetOrderItem(ctx context.Context, id uuid.UUID) (*models.OrderItem, *ServiceError) {
	item, err := s.orderRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order item not found")
		}
		return nil, internal("Failed to fetch order item")
	}
	return item, nil
}

// ListOrderItems returns every item of one order.
func (s *OrderService) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, *ServiceError) {
	items, err := s.orderRepo.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, internal("Failed to fetch order items")
	}
	return items, nil
}

// ensureOrderMutable rejects item mutations once the order's payment is
// approved.
func (s *OrderService) ensureOrderMutable(ctx context.Context, orderID uuid.UUID) *ServiceError {
	status, err := s.orderRepo.PaymentStatus(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to check payment status", zap.Error(err))
		return internal("Failed to check order state")
	}
	if status == models.PaymentStatusApproved {
		return conflict("Order items cannot be changed after payment approval")
	}
	return nil
}
