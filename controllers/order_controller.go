package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda-backend/middleware"
	"tienda-backend/services"
)

// OrderController handles checkout, quoting and order CRUD. The order owner
// always comes from the token, never from the body.
type OrderController struct {
	orders     *services.OrderService
	authorizer middleware.Authorizer
}

// NewOrderController creates a new OrderController.
func NewOrderController(orders *services.OrderService, authorizer middleware.Authorizer) *OrderController {
	return &OrderController{orders: orders, authorizer: authorizer}
}

// Create handles POST /orders.
func (oc *OrderController) Create(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	order, svcErr := oc.orders.CreateOrder(ctx.Request.Context(), middleware.CallerID(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// Quote handles POST /orders/quote, pricing a checkout without persisting
// anything.
func (oc *OrderController) Quote(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	quote, svcErr := oc.orders.PriceOrder(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, quote)
}

// Get handles GET /orders/:id. Owner or admin, enforced at the route.
func (oc *OrderController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	order, svcErr := oc.orders.GetOrder(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// List handles GET /orders. Admin only.
func (oc *OrderController) List(ctx *gin.Context) {
	orders, svcErr := oc.orders.ListOrders(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// ListByUser handles GET /orders/user/:userId. Self or admin.
func (oc *OrderController) ListByUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	if !oc.authorizer.CanAccess(middleware.CallerID(ctx), middleware.CallerRole(ctx), userID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	orders, svcErr := oc.orders.ListUserOrders(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateShipping handles PUT /orders/:id. Owner or admin, enforced at the
// route. Only the shipping method can change after checkout; stored totals
// stay as priced.
func (oc *OrderController) UpdateShipping(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		ShippingID uuid.UUID `json:"shipping_id" binding:"required"`
	}
	if !bindAndValidate(ctx, &req) {
		return
	}

	order, svcErr := oc.orders.UpdateOrderShipping(ctx.Request.Context(), id, req.ShippingID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// Delete handles DELETE /orders/:id. Owner or admin; soft delete.
func (oc *OrderController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := oc.orders.DeleteOrder(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
