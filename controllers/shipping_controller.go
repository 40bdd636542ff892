package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/services"
)

// ShippingController handles shipping-method CRUD. Reads are public so
// storefronts can show delivery options; writes are admin only.
type ShippingController struct {
	shippings *services.ShippingService
}

// NewShippingController creates a new ShippingController.
func NewShippingController(shippings *services.ShippingService) *ShippingController {
	return &ShippingController{shippings: shippings}
}

// Create handles POST /shippings.
func (sc *ShippingController) Create(ctx *gin.Context) {
	var in services.ShippingInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	shipping, svcErr := sc.shippings.Create(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, shipping)
}

// Get handles GET /shippings/:id.
func (sc *ShippingController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	shipping, svcErr := sc.shippings.Get(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, shipping)
}

// List handles GET /shippings.
func (sc *ShippingController) List(ctx *gin.Context) {
	methods, svcErr := sc.shippings.List(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, methods)
}

// Update handles PUT /shippings/:id.
func (sc *ShippingController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.ShippingInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	shipping, svcErr := sc.shippings.Update(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, shipping)
}

// Delete handles DELETE /shippings/:id.
func (sc *ShippingController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := sc.shippings.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Shipping method deleted successfully"})
}
