package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-backend/services"
)

// CategoryController handles category CRUD.
type CategoryController struct {
	catalog *services.CatalogService
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

// Create handles POST /categories. Admin only.
func (cc *CategoryController) Create(ctx *gin.Context) {
	var in services.CategoryInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	category, svcErr := cc.catalog.CreateCategory(ctx.Request.Context(), in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// Get handles GET /categories/:id.
func (cc *CategoryController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	category, svcErr := cc.catalog.GetCategory(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// List handles GET /categories.
func (cc *CategoryController) List(ctx *gin.Context) {
	categories, svcErr := cc.catalog.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// Update handles PUT /categories/:id. Admin only.
func (cc *CategoryController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var in services.CategoryInput
	if !bindAndValidate(ctx, &in) {
		return
	}

	category, svcErr := cc.catalog.UpdateCategory(ctx.Request.Context(), id, in)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Delete handles DELETE /categories/:id. Admin only.
func (cc *CategoryController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if svcErr := cc.catalog.DeleteCategory(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
