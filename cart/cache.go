package cart

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops a user's cached cart after their cart lines change.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Cache fronts the cart feature's Redis cache. The database rows cleared
// inside the checkout transaction are the source of truth; this only evicts
// the cached copy so the cart page does not serve stale lines.
type Cache struct {
	client *redis.Client
}

// NewCache creates a cart cache around an existing Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Invalidate removes the cached cart for a user.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
