package store

import (
	"context"
	"database/sql"

	"storefront/internal/models"
)

// GetOrCreateCart returns the user's cart, creating it on first use.
func (s *Store) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.GetContext(ctx, &cart, "SELECT * FROM carts WHERE user_id = $1", userID)
	if err == nil {
		return &cart, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	query := `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, user_id, created_at, updated_at`

	if err := s.db.GetContext(ctx, &cart, query, userID); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertCartItem creates the (cart, product) line with the given quantity
// or increments the existing one by it.
func (s *Store) UpsertCartItem(ctx context.Context, cartID, productID int64, quantity int) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at`

	var item models.CartItem
	if err := s.db.GetContext(ctx, &item, query, cartID, productID, quantity); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetCartItemQuantity replaces the quantity of an existing line.
func (s *Store) SetCartItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.CartItem, error) {
	query := `
		UPDATE cart_items SET quantity = $1, updated_at = NOW()
		WHERE cart_id = $2 AND product_id = $3
		RETURNING id, cart_id, product_id, quantity, created_at, updated_at`

	var item models.CartItem
	err := s.db.GetContext(ctx, &item, query, quantity, cartID, productID)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundErrorf("product %d not in cart", productID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteCartItem removes the line for a product. No-op when absent.
func (s *Store) DeleteCartItem(ctx context.Context, cartID, productID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2", cartID, productID)
	return err
}

// ClearCart deletes all lines for a cart.
func (s *Store) ClearCart(ctx context.Context, cartID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID)
	return err
}

// GetCartLines retrieves cart items joined with current product prices.
func (s *Store) GetCartLines(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name AS product_name, p.price AS unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`

	lines := []models.CartLine{}
	err := s.db.SelectContext(ctx, &lines, query, cartID)
	return lines, err
}
