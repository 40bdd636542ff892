package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/middleware"
	"tienda-backend/services"
)

// AddressController handles a user's address book. Creation and listing are
// always scoped to the caller; per-address routes are owner-checked by
// middleware.
type AddressController struct {
	addresses  *services.AddressService
	authorizer middleware.Authorizer
}

// NewAddressController creates a new AddressController.
func NewAddressController(addresses *services.AddressService, authorizer middleware.Authorizer) *AddressController {
	return &AddressController{addresses: addresses, authorizer: authorizer}
}

// Create handles POST /addresses, storing an address for the caller.
func (ac *AddressController) Create(ctx *gin.Context) {
	var in services.AddressInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	address, svcErr := ac.addresses.Create(ctx.Request.Context(), middleware.CallerID(ctx), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, address)
}

// List handles GET /addresses, returning the caller's addresses.
func (ac *AddressController) List(ctx *gin.Context) {
	addresses, svcErr := ac.addresses.ListForUser(ctx.Request.Context(), middleware.CallerID(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, addresses)
}

// ListByUser handles GET /addresses/user/:userId. Self or admin.
func (ac *AddressController) ListByUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	if !ac.authorizer.CanAccess(middleware.CallerID(ctx), middleware.CallerRole(ctx), userID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	addresses, svcErr := ac.addresses.ListForUser(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, addresses)
}

// Update handles PUT /addresses/:id. Owner or admin, enforced at the route.
func (ac *AddressController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.AddressInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	address, svcErr := ac.addresses.Update(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, address)
}

// SetDefault handles PATCH /addresses/:id/default. Owner or admin, enforced
// at the route.
func (ac *AddressController) SetDefault(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := ac.addresses.SetDefault(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}

// Delete handles DELETE /addresses/:id. Owner or admin, enforced at the
// route.
func (ac *AddressController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := ac.addresses.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
