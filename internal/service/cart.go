package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService handles the per-user cart: line mutations and derived
// totals. Totals are recomputed from the rows on every read.
type CartService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CartView is the cart with its lines and derived totals.
type CartView struct {
	Cart       models.Cart       `json:"cart"`
	Items      []models.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// AddItem adds quantity of a product to the cart, creating the line or
// incrementing an existing one. Quantity must be positive.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if quantity <= 0 {
		return nil, models.ValidationErrorf("quantity must be greater than 0")
	}

	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.UpsertCartItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}

	util.CartItemsAddedTotal.Inc()
	s.logger.Debug("Cart item added",
		zap.Int64("cart_id", cart.ID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateItem sets the quantity of an existing line. A quantity of zero
// or less removes the line instead, matching the cart endpoints'
// delete-on-zero behavior.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.store.DeleteCartItem(ctx, cart.ID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.store.SetCartItemQuantity(ctx, cart.ID, productID, quantity)
}

// RemoveItem deletes the line for a product. Removing an absent product
// is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		return err
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.store.DeleteCartItem(ctx, cart.ID, productID)
}

// Clear removes every line from the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.store.ClearCart(ctx, cart.ID)
}

func (s *CartService) buildView(ctx context.Context, cart *models.Cart) (*CartView, error) {
	lines, err := s.store.GetCartLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return &CartView{
		Cart:       *cart,
		Items:      lines,
		TotalItems: models.CartTotalItems(lines),
		TotalPrice: models.CartTotalPrice(lines),
	}, nil
}
