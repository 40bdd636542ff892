package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/services"
)

// ProductController handles product CRUD. Reads go through the Redis cache
// when one is configured; writes invalidate it.
type ProductController struct {
	catalog *services.CatalogService
	cache   *CacheManager
}

// NewProductController creates a new ProductController.
func NewProductController(catalog *services.CatalogService, cache *CacheManager) *ProductController {
	return &ProductController{catalog: catalog, cache: cache}
}

// Create handles POST /products. Admin only.
func (pc *ProductController) Create(ctx *gin.Context) {
	var in services.ProductInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	product, svcErr := pc.catalog.CreateProduct(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), "")
	ctx.JSON(http.StatusCreated, product)
}

// Get handles GET /products/:id. Public.
func (pc *ProductController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if cached, hit := pc.cache.GetProduct(ctx.Request.Context(), id.String()); hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	product, svcErr := pc.catalog.GetProduct(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.SetProduct(id.String(), product)
	ctx.JSON(http.StatusOK, product)
}

// List handles GET /products. Public.
func (pc *ProductController) List(ctx *gin.Context) {
	if cached, hit := pc.cache.GetProductList(ctx.Request.Context()); hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	products, svcErr := pc.catalog.ListProducts(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.SetProductList(products)
	ctx.JSON(http.StatusOK, products)
}

// Update handles PUT /products/:id. Admin only.
func (pc *ProductController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.ProductInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	product, svcErr := pc.catalog.UpdateProduct(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), id.String())
	ctx.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id. Admin only.
func (pc *ProductController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := pc.catalog.DeleteProduct(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), id.String())
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
