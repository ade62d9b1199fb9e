package catalog

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/redisclient"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service answers catalog queries: category tree maintenance, subtree
// product aggregation and filtered product listings.
type Service struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewService creates a new catalog service
func NewService(store *store.Store, redis *redisclient.Client) *Service {
	return &Service{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// CreateCategoryRequest carries the fields for a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug,omitempty"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateCategory creates a category, deriving the slug from the name
// when none is given. The slug is never regenerated on later renames.
func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	ctx, span := util.StartSpan(ctx, "catalog.CreateCategory")
	defer span.End()

	if req.Name == "" {
		return nil, models.ValidationErrorf("category name is required")
	}

	if req.ParentID != nil {
		if _, err := s.store.GetCategoryByID(ctx, *req.ParentID); err != nil {
			return nil, models.ValidationErrorf("parent category %d does not exist", *req.ParentID)
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		ParentID:    req.ParentID,
		Description: req.Description,
	}
	if category.Slug == "" {
		category.Slug = makeSlug(req.Name)
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.Int64("category_id", category.ID),
		zap.String("slug", category.Slug))
	return category, nil
}

// UpdateCategoryRequest carries the mutable category fields.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	ClearParent bool    `json:"clear_parent,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategory applies the request to a category. Parent reassignments
// are checked against the tree before anything is written, so a cyclic
// assignment leaves the table untouched.
func (s *Service) UpdateCategory(ctx context.Context, categorySlug string, req *UpdateCategoryRequest) (*models.Category, error) {
	ctx, span := util.StartSpan(ctx, "catalog.UpdateCategory")
	defer span.End()

	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	if req.ClearParent {
		category.ParentID = nil
	} else if req.ParentID != nil {
		tree, err := s.loadTree(ctx)
		if err != nil {
			return nil, err
		}
		if err := tree.ValidateParent(category.ID, req.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, models.ValidationErrorf("category name is required")
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by slug together with its ancestor path.
func (s *Service) GetCategory(ctx context.Context, categorySlug string) (*models.Category, string, error) {
	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, "", err
	}

	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, "", err
	}
	path, err := tree.AncestorsPath(category.ID)
	if err != nil {
		return nil, "", err
	}
	return category, path, nil
}

// ListCategories returns the whole taxonomy.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.GetCategories(ctx)
}

// AllProducts returns every product in the category's subtree,
// descendants included.
func (s *Service) AllProducts(ctx context.Context, categorySlug string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "catalog.AllProducts")
	defer span.End()

	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.GetProductsByCategoryIDs(ctx, tree.SubtreeIDs(category.ID))
}

// AveragePrice returns the arithmetic mean price over the category's
// subtree. An empty subtree yields zero, not an error.
func (s *Service) AveragePrice(ctx context.Context, categorySlug string) (decimal.Decimal, error) {
	products, err := s.AllProducts(ctx, categorySlug)
	if err != nil {
		return decimal.Zero, err
	}
	return averagePrice(products), nil
}

// ListProducts applies search, category, price-range and sort filters.
// A category filter covers the whole subtree.
func (s *Service) ListProducts(ctx context.Context, f ProductQuery) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "catalog.ListProducts")
	defer span.End()

	filter := store.ProductFilter{
		Search:   f.Search,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
		Sort:     f.Sort,
	}

	if f.CategorySlug != "" {
		category, err := s.store.GetCategoryBySlug(ctx, f.CategorySlug)
		if err != nil {
			return nil, err
		}
		tree, err := s.loadTree(ctx)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = tree.SubtreeIDs(category.ID)
	}

	return s.store.ListProducts(ctx, filter)
}

// ProductQuery mirrors the listing endpoint's query parameters.
type ProductQuery struct {
	Search       string
	CategorySlug string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Sort         string
}

// GetProduct retrieves a product and bumps its view counter. The Redis
// counter is the hot path; the row is incremented as well so the count
// survives a cache flush.
func (s *Service) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.redis.IncrProductViews(ctx, productID); err != nil {
		s.logger.Warn("Failed to increment view counter in Redis",
			zap.Int64("product_id", productID),
			zap.Error(err))
	}
	if err := s.store.AddProductViews(ctx, productID, 1); err != nil {
		s.logger.Warn("Failed to increment view counter",
			zap.Int64("product_id", productID),
			zap.Error(err))
	} else {
		product.Views++
	}

	return product, nil
}

// CreateProduct inserts a product after checking the owning category.
func (s *Service) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, models.ValidationErrorf("product name is required")
	}
	if p.Price.IsNegative() {
		return nil, models.ValidationErrorf("price must not be negative")
	}
	if _, err := s.store.GetCategoryByID(ctx, p.CategoryID); err != nil {
		return nil, models.ValidationErrorf("category %d does not exist", p.CategoryID)
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) loadTree(ctx context.Context) (*Tree, error) {
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return NewTree(categories), nil
}

// makeSlug derives a URL-safe slug from a category name. Ampersands
// drop out of slugs ("Books & Movies" -> "books-movies") instead of
// the library's default "and" substitution.
func makeSlug(name string) string {
	return slug.Make(strings.ReplaceAll(name, "&", " "))
}

// averagePrice is the arithmetic mean over the given products, zero
// when there are none.
func averagePrice(products []models.Product) decimal.Decimal {
	if len(products) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(products))))
}
