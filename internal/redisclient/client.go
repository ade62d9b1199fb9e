package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// AcquireCheckoutLock takes the per-cart checkout lock. Returns false
// when another checkout currently holds it.
func (c *Client) AcquireCheckoutLock(ctx context.Context, cartID int64, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, checkoutLockKey(cartID), "1", ttl).Result()
}

// ReleaseCheckoutLock releases the per-cart checkout lock.
func (c *Client) ReleaseCheckoutLock(ctx context.Context, cartID int64) error {
	return c.rdb.Del(ctx, checkoutLockKey(cartID)).Err()
}

// IncrProductViews increments the product's view counter and returns
// the new value.
func (c *Client) IncrProductViews(ctx context.Context, productID int64) (int64, error) {
	return c.rdb.Incr(ctx, fmt.Sprintf("views:product:%d", productID)).Result()
}

// GetProductViews retrieves the cached view count for a product.
func (c *Client) GetProductViews(ctx context.Context, productID int64) (int64, error) {
	count, err := c.rdb.Get(ctx, fmt.Sprintf("views:product:%d", productID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

func checkoutLockKey(cartID int64) string {
	return fmt.Sprintf("lock:checkout:cart:%d", cartID)
}
