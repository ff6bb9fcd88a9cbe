// internal/adapters/out/redis/cart_repository_redis.go
package redis

import (
	"context"
	"errors"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"agromart/internal/adapters/out/snapshot"
	cartdom "agromart/internal/domain/cart"
)

const defaultKeyPrefix = "cart:"

// CartRepositoryRedis implements cart.Repository on a redis key-value store.
// One JSON blob per cart under "cart:<cartId>", no expiration (carts have no
// TTL; clear() overwrites with the empty snapshot instead of deleting).
type CartRepositoryRedis struct {
	Client    *goredis.Client
	KeyPrefix string
}

func NewCartRepositoryRedis(client *goredis.Client) *CartRepositoryRedis {
	return &CartRepositoryRedis{Client: client, KeyPrefix: defaultKeyPrefix}
}

func (r *CartRepositoryRedis) key(cartID string) string {
	prefix := r.KeyPrefix
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	return prefix + cartID
}

func (r *CartRepositoryRedis) GetByCartID(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_redis: client is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, errors.New("cart_repository_redis: cartID is empty")
	}

	data, err := r.Client.Get(ctx, r.key(cid)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot.DecodeCart(cid, data)
}

func (r *CartRepositoryRedis) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_redis: client is nil")
	}
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return errors.New("cart_repository_redis: cart.ID is required")
	}

	data, err := snapshot.EncodeCart(c)
	if err != nil {
		return err
	}

	// 0 = no expiration
	return r.Client.Set(ctx, r.key(c.ID), data, 0).Err()
}

func (r *CartRepositoryRedis) DeleteByCartID(ctx context.Context, cartID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_redis: client is nil")
	}

	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return errors.New("cart_repository_redis: cartID is empty")
	}
	return r.Client.Del(ctx, r.key(cid)).Err()
}
