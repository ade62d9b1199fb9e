package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/redisclient"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService converts carts into orders. The conversion is one
// database transaction; the OrderPlaced event that feeds notifications
// is best-effort and never fails a completed checkout.
type CheckoutService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	lockTTL        time.Duration
	logger         *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	lockTTL time.Duration,
) *CheckoutService {
	return &CheckoutService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		lockTTL:        lockTTL,
		logger:         util.GetLogger(),
	}
}

// CheckoutRequest carries the optional delivery details.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
}

// Checkout converts the user's cart into an order and clears the cart.
// An empty cart fails with models.ErrEmptyCart and writes nothing; a
// concurrent checkout of the same cart fails with a conflict.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, req *CheckoutRequest) (*models.Order, []models.OrderItem, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// The Redis lock rejects concurrent checkouts of the same cart up
	// front; the FOR UPDATE lock inside the transaction keeps the
	// conversion correct even when Redis is unavailable.
	locked, err := s.redis.AcquireCheckoutLock(ctx, cart.ID, s.lockTTL)
	if err != nil {
		s.logger.Warn("Checkout lock unavailable, relying on row lock",
			zap.Int64("cart_id", cart.ID),
			zap.Error(err))
	} else if !locked {
		util.CheckoutsFailedTotal.WithLabelValues("concurrent").Inc()
		return nil, nil, models.ConflictErrorf("checkout already in progress for this cart")
	} else {
		defer func() {
			if err := s.redis.ReleaseCheckoutLock(context.Background(), cart.ID); err != nil {
				s.logger.Warn("Failed to release checkout lock",
					zap.Int64("cart_id", cart.ID),
					zap.Error(err))
			}
		}()
	}

	customer, err := s.store.GetCustomerByUserID(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, nil, err
	}

	phone := req.PhoneNumber
	if phone == "" && customer != nil {
		phone = customer.Phone
	}

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     newOrderNumber(time.Now()),
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     phone,
	}

	items, err := s.store.CheckoutCartTx(ctx, cart.ID, order)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			util.CheckoutsFailedTotal.WithLabelValues("empty_cart").Inc()
		} else {
			util.CheckoutsFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, nil, err
	}

	util.CheckoutsTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("user_id", userID),
		zap.String("total_price", order.TotalPrice.String()))

	s.publishOrderPlaced(ctx, order, items, customer)

	return order, items, nil
}

// publishOrderPlaced hands the completed order to the notification
// pipeline. Failures are logged and swallowed; the order stands.
func (s *CheckoutService) publishOrderPlaced(ctx context.Context, order *models.Order, items []models.OrderItem, customer *models.Customer) {
	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		PhoneNumber: order.PhoneNumber,
		TotalPrice:  order.TotalPrice,
		Items:       make([]models.OrderItemData, 0, len(items)),
	}
	if customer != nil {
		event.CustomerEmail = customer.Email
		event.CustomerName = customer.Name
	}

	for _, item := range items {
		event.Items = append(event.Items, models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		})
	}

	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

// newOrderNumber builds a timestamp-prefixed order number. The random
// suffix keeps same-second checkouts from colliding on the unique
// order_number column.
func newOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102150405"), uuid.New().String()[:8])
}
