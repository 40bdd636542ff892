package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda-backend/services"
)

// OrderItemController handles order-item CRUD. Writes are admin only; once
// a payment is approved the service rejects every mutation.
type OrderItemController struct {
	orders *services.OrderService
}

// NewOrderItemController creates a new OrderItemController.
func NewOrderItemController(orders *services.OrderService) *OrderItemController {
	return &OrderItemController{orders: orders}
}

type orderItemCreateRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	ProductSizeID uuid.UUID `json:"product_size_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	Price         float64   `json:"price" binding:"min=0"`
}

// Create handles POST /order-items.
func (oc *OrderItemController) Create(ctx *gin.Context) {
	var req orderItemCreateRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	item, svcErr := oc.orders.AddOrderItem(ctx.Request.Context(), req.OrderID, req.ProductSizeID, req.Quantity, req.Price)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Get handles GET /order-items/:id.
func (oc *OrderItemController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	item, svcErr := oc.orders.GetOrderItem(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// ListByOrder handles GET /order-items/order/:orderId. Owner or admin,
// enforced at the route.
func (oc *OrderItemController) ListByOrder(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "orderId")
	if !ok {
		return
	}

	items, svcErr := oc.orders.ListOrderItems(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Update handles PUT /order-items/:id.
func (oc *OrderItemController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd services.OrderItemUpdate
	if !bindAndValidate(ctx, &upd) {
		return
	}

	item, svcErr := oc.orders.UpdateOrderItem(ctx.Request.Context(), id, upd)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete handles DELETE /order-items/:id.
func (oc *OrderItemController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := oc.orders.DeleteOrderItem(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order item deleted successfully"})
}
