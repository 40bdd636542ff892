package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/middleware"
	"tienda-backend/services"
)

// CartItemController handles cart-item CRUD. Item routes are owner-checked
// by middleware; creation carries the cart id in the body, so the check
// happens here instead.
type CartItemController struct {
	carts      *services.CartService
	cartOwner  middleware.OwnerResolver
	authorizer middleware.Authorizer
}

// NewCartItemController creates a new CartItemController.
func NewCartItemController(carts *services.CartService, cartOwner middleware.OwnerResolver, authorizer middleware.Authorizer) *CartItemController {
	return &CartItemController{carts: carts, cartOwner: cartOwner, authorizer: authorizer}
}

// Create handles POST /cart-items.
func (cc *CartItemController) Create(ctx *gin.Context) {
	var in services.CartItemInput
	if !bindAndValidate(ctx, &in) {
		return
	}
	if !cc.canAccessCart(ctx, in.CartID) {
		return
	}

	item, svcErr := cc.carts.AddItem(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Get handles GET /cart-items/:id. Owner or admin, enforced at the route.
func (cc *CartItemController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	item, svcErr := cc.carts.GetItem(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// ListByCart handles GET /cart-items/cart/:cartId.
func (cc *CartItemController) ListByCart(ctx *gin.Context) {
	cartID, ok := pathID(ctx, "cartId")
	if !ok {
		return
	}
	if !cc.canAccessCart(ctx, cartID) {
		return
	}

	items, svcErr := cc.carts.ListItems(ctx.Request.Context(), cartID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Update handles PUT /cart-items/:id. Owner or admin, enforced at the route.
func (cc *CartItemController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.CartItemUpdate
	if !bindAndValidate(ctx, &in) {
		return
	}

	item, svcErr := cc.carts.UpdateItem(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete handles DELETE /cart-items/:id. Owner or admin, enforced at the
// route.
func (cc *CartItemController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := cc.carts.DeleteItem(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
}

func (cc *CartItemController) canAccessCart(ctx *gin.Context, cartID uuid.UUID) bool {
	ownerID, err := cc.cartOwner(ctx.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
		}
		return false
	}
	if !cc.authorizer.CanAccess(middleware.CallerID(ctx), middleware.CallerRole(ctx), ownerID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return false
	}
	return true
}
