package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda-backend/services"
)

// PaymentController handles payment CRUD. Admin only.
type PaymentController struct {
	payments *services.PaymentService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// Create handles POST /payments.
func (pc *PaymentController) Create(ctx *gin.Context) {
	var in services.PaymentInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	payment, svcErr := pc.payments.Create(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, payment)
}

// Get handles GET /payments/:id.
func (pc *PaymentController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	payment, svcErr := pc.payments.Get(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// List handles GET /payments, optionally filtered with ?order_id=.
func (pc *PaymentController) List(ctx *gin.Context) {
	var orderID *uuid.UUID
	if raw := ctx.Query("order_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
			return
		}
		orderID = &id
	}

	payments, svcErr := pc.payments.List(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, payments)
}

// Update handles PUT /payments/:id, transitioning the status.
func (pc *PaymentController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd services.PaymentUpdate
	if !bindAndValidate(ctx, &upd) {
		return
	}

	payment, svcErr := pc.payments.Update(ctx.Request.Context(), id, upd)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /payments/:id.
func (pc *PaymentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := pc.payments.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
