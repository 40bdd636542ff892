package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/repository"
)

// ProductSizeInput is a variant payload nested inside a product write.
type ProductSizeInput struct {
	Size   string   `json:"size" binding:"required"`
	Stock  int      `json:"stock" binding:"min=0"`
	Weight float64  `json:"weight" binding:"required,gt=0"`
	Length *float64 `json:"length" binding:"omitempty,gt=0"`
	Width  *float64 `json:"width" binding:"omitempty,gt=0"`
	Height *float64 `json:"height" binding:"omitempty,gt=0"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"required,gt=0"`
	Image       string             `json:"image"`
	CategoryID  *uuid.UUID         `json:"category_id"`
	Sizes       []ProductSizeInput `json:"sizes" binding:"omitempty,dive"`
}

// SizeInput is the payload for a standalone size write.
type SizeInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"required"`
	Stock     int       `json:"stock" binding:"min=0"`
	Weight    float64   `json:"weight" binding:"required,gt=0"`
	Length    *float64  `json:"length" binding:"omitempty,gt=0"`
	Width     *float64  `json:"width" binding:"omitempty,gt=0"`
	Height    *float64  `json:"height" binding:"omitempty,gt=0"`
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CatalogService manages products, their sizes and categories.
type CatalogService struct {
	productRepo  repository.ProductRepository
	sizeRepo     repository.ProductSizeRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	sizeRepo repository.ProductSizeRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateProduct stores a product together with any nested sizes.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, *ServiceError) {
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, badRequest("Category does not exist")
			}
			return nil, internal("Failed to verify category")
		}
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
		Sizes:       sizesFromInputs(in.Sizes),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, internal("Failed to create product")
	}
	return product, nil
}

// GetProduct returns one product with sizes and category preloaded.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Error(err))
		return nil, internal("Failed to fetch product")
	}
	return product, nil
}

// ListProducts returns the whole catalog, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	return products, nil
}

// UpdateProduct overwrites a product's own fields. When the payload carries
// sizes, the product's size set is replaced wholesale.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, internal("Failed to fetch product")
	}

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, badRequest("Category does not exist")
			}
			return nil, internal("Failed to verify category")
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Image = in.Image
	product.CategoryID = in.CategoryID

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, internal("Failed to update product")
	}

	if in.Sizes != nil {
		if err := s.productRepo.ReplaceSizes(ctx, product.ID, sizesFromInputs(in.Sizes)); err != nil {
			s.logger.Error("Failed to replace product sizes", zap.Error(err))
			return nil, internal("Failed to update product sizes")
		}
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product and, through the schema, its sizes.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.Error(err))
		return internal("Failed to delete product")
	}
	return nil
}

// CreateSize adds a variant to an existing product.
func (s *CatalogService) CreateSize(ctx context.Context, in SizeInput) (*models.ProductSize, *ServiceError) {
	if _, err := s.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("Product does not exist")
		}
		return nil, internal("Failed to verify product")
	}

	size := &models.ProductSize{
		ProductID: in.ProductID,
		Size:      in.Size,
		Stock:     in.Stock,
		Weight:    in.Weight,
		Length:    in.Length,
		Width:     in.Width,
		Height:    in.Height,
	}
	if err := s.sizeRepo.Create(ctx, size); err != nil {
		s.logger.Error("Failed to create product size", zap.Error(err))
		return nil, internal("Failed to create product size")
	}
	return size, nil
}

// GetSize returns one variant with its product preloaded.
func (s *CatalogService) GetSize(ctx context.Context, id uuid.UUID) (*models.ProductSize, *ServiceError) {
	size, err := s.sizeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product size not found")
		}
		return nil, internal("Failed to fetch product size")
	}
	return size, nil
}

// ListSizes returns every variant in the catalog.
func (s *CatalogService) ListSizes(ctx context.Context) ([]models.ProductSize, *ServiceError) {
	sizes, err := s.sizeRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list product sizes", zap.Error(err))
		return nil, internal("Failed to fetch product sizes")
	}
	return sizes, nil
}

// UpdateSize overwrites a variant's fields. The owning product never changes.
func (s *CatalogService) UpdateSize(ctx context.Context, id uuid.UUID, in SizeInput) (*models.ProductSize, *ServiceError) {
	size, err := s.sizeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product size not found")
		}
		return nil, internal("Failed to fetch product size")
	}

	size.Size = in.Size
	size.Stock = in.Stock
	size.Weight = in.Weight
	size.Length = in.Length
	size.Width = in.Width
	size.Height = in.Height
	size.Product = nil

	if err := s.sizeRepo.Update(ctx, size); err != nil {
		s.logger.Error("Failed to update product size", zap.Error(err))
		return nil, internal("Failed to update product size")
	}
	return size, nil
}

// DeleteSize removes a variant.
func (s *CatalogService) DeleteSize(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.sizeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Product size not found")
		}
		s.logger.Error("Failed to delete product size", zap.Error(err))
		return internal("Failed to delete product size")
	}
	return nil
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, *ServiceError) {
	category := &models.Category{Name: in.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, internal("Failed to create category")
	}
	return category, nil
}

// GetCategory returns one category.
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category not found")
		}
		return nil, internal("Failed to fetch category")
	}
	return category, nil
}

// ListCategories returns all categories by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internal("Failed to fetch categories")
	}
	return categories, nil
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, *ServiceError) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category not found")
		}
		return nil, internal("Failed to fetch category")
	}

	category.Name = in.Name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, internal("Failed to update category")
	}
	return category, nil
}

// DeleteCategory removes a category. Products keep existing with their
// category reference cleared by the schema.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Category not found")
		}
		s.logger.Error("Failed to delete category", zap.Error(err))
		return internal("Failed to delete category")
	}
	return nil
}

func sizesFromInputs(inputs []ProductSizeInput) []models.ProductSize {
	if len(inputs) == 0 {
		return nil
	}
	sizes := make([]models.ProductSize, 0, len(inputs))
	for _, in := range inputs {
		sizes = append(sizes, models.ProductSize{
			Size:   in.Size,
			Stock:  in.Stock,
			Weight: in.Weight,
			Length: in.Length,
			Width:  in.Width,
			Height: in.Height,
		})
	}
	return sizes
}
