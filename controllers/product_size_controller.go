package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/services"
)

// ProductSizeController handles standalone size CRUD.
type ProductSizeController struct {
	catalog *services.CatalogService
	cache   *CacheManager
}

// NewProductSizeController creates a new ProductSizeController.
func NewProductSizeController(catalog *services.CatalogService, cache *CacheManager) *ProductSizeController {
	return &ProductSizeController{catalog: catalog, cache: cache}
}

// Create handles POST /sizes. Admin only.
func (sc *ProductSizeController) Create(ctx *gin.Context) {
	var in services.SizeInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	size, svcErr := sc.catalog.CreateSize(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	sc.cache.InvalidateProduct(ctx.Request.Context(), in.ProductID.String())
	ctx.JSON(http.StatusCreated, size)
}

// Get handles GET /sizes/:id. Public.
func (sc *ProductSizeController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	size, svcErr := sc.catalog.GetSize(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, size)
}

// List handles GET /sizes. Public.
func (sc *ProductSizeController) List(ctx *gin.Context) {
	sizes, svcErr := sc.catalog.ListSizes(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, sizes)
}

// Update handles PUT /sizes/:id. Admin only.
func (sc *ProductSizeController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.SizeInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	size, svcErr := sc.catalog.UpdateSize(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	sc.cache.InvalidateProduct(ctx.Request.Context(), size.ProductID.String())
	ctx.JSON(http.StatusOK, size)
}

// Delete handles DELETE /sizes/:id. Admin only.
func (sc *ProductSizeController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := sc.catalog.DeleteSize(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	sc.cache.InvalidateProduct(ctx.Request.Context(), "")
	ctx.JSON(http.StatusOK, gin.H{"message": "Product size deleted successfully"})
}
