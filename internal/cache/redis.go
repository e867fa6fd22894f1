package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BookCache хранит сгруппированную по магазинам корзину между запросами.
// Любая мутация корзины обязана сбрасывать ключ.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewBookCache(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*BookCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &BookCache{client: rdb, ttl: ttl, log: log}, nil
}

func (c *BookCache) Close() error {
	return c.client.Close()
}

func bookKey(cartID uuid.UUID) string {
	return fmt.Sprintf("cart_book:%s", cartID)
}

func (c *BookCache) Get(ctx context.Context, cartID uuid.UUID) ([]byte, bool) {
	data, err := c.client.Get(ctx, bookKey(cartID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *BookCache) Set(ctx context.Context, cartID uuid.UUID, data []byte) {
	if err := c.client.Set(ctx, bookKey(cartID), data, c.ttl).Err(); err != nil {
		c.log.Warn("book cache set failed", zap.String("cart_id", cartID.String()), zap.Error(err))
	}
}

func (c *BookCache) Invalidate(ctx context.Context, cartID uuid.UUID) {
	if err := c.client.Del(ctx, bookKey(cartID)).Err(); err != nil {
		c.log.Warn("book cache invalidate failed", zap.String("cart_id", cartID.String()), zap.Error(err))
	}
}
