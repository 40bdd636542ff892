package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/middleware"
	"tienda-backend/services"
)

// CartController handles cart reads and deletion. Carts are created with the
// account, never through the API.
type CartController struct {
	carts *services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// Get handles GET /carts/:id. Owner or admin, enforced at the route.
func (cc *CartController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cart, svcErr := cc.carts.GetCart(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// GetMine handles GET /carts/me, resolving the caller's own cart.
func (cc *CartController) GetMine(ctx *gin.Context) {
	cart, svcErr := cc.carts.GetCartForUser(ctx.Request.Context(), middleware.CallerID(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// List handles GET /carts. Admin only.
func (cc *CartController) List(ctx *gin.Context) {
	carts, svcErr := cc.carts.ListCarts(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, carts)
}

// Delete handles DELETE /carts/:id. Admin only.
func (cc *CartController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := cc.carts.DeleteCart(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cart deleted successfully"})
}
