package store

import (
	"context"
	"database/sql"

	"storefront/internal/models"

	"github.com/lib/pq"
)

// CreateCategory inserts a category row.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, parent_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, c, query, c.Name, c.Slug, c.ParentID, c.Description)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.ConflictErrorf("category slug %q already exists", c.Slug)
	}
	return err
}

// UpdateCategory updates name, parent and description. The slug is set
// once at creation and never regenerated.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, parent_id = $2, description = $3, updated_at = NOW() WHERE id = $4",
		c.Name, c.ParentID, c.Description, c.ID)
	return err
}

// GetCategoryByID retrieves a category by ID
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.db.GetContext(ctx, &c, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundErrorf("category %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategoryBySlug retrieves a category by slug
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.db.GetContext(ctx, &c, "SELECT * FROM categories WHERE slug = $1", slug)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundErrorf("category %q", slug)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategories retrieves the whole category table. The taxonomy is small
// and tree traversal happens in memory over parent_id.
func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	return categories, err
}
