package store

import (
	"context"
	"database/sql"

	"storefront/internal/models"

	"github.com/lib/pq"
)

// CreateCustomer inserts a customer profile. At most one per user and
// one per email address.
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (user_id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, c, query, c.UserID, c.Name, c.Email, c.Phone)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.ConflictErrorf("customer profile already exists")
	}
	return err
}

// GetCustomerByUserID retrieves the profile linked to a user.
func (s *Store) GetCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var c models.Customer
	err := s.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundErrorf("customer for user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCustomer updates the mutable profile fields.
func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE customers SET name = $1, email = $2, phone = $3, updated_at = NOW() WHERE user_id = $4",
		c.Name, c.Email, c.Phone, c.UserID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ConflictErrorf("email %q already in use", c.Email)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.NotFoundErrorf("customer for user %d", c.UserID)
	}
	return nil
}
