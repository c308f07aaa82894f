package repository

import (
	"context"
	"errors"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"quicklink-go/constant"
	"quicklink-go/internal/model"
)

// LinkCache 短链缓存。缓存失败只记录日志，按未命中处理
type LinkCache interface {
	GetCodeByURL(ctx context.Context, originalURL string) (string, bool)
	SetCodeByURL(ctx context.Context, originalURL, shortCode string)
	IsMissing(ctx context.Context, shortCode string) bool
	MarkMissing(ctx context.Context, shortCode string)
	ClearMissing(ctx context.Context, shortCode string)
	Ping(ctx context.Context) error
}

// NopLinkCache 未配置 Redis 时使用
type NopLinkCache struct{}

func (NopLinkCache) GetCodeByURL(context.Context, string) (string, bool) { return "", false }
func (NopLinkCache) SetCodeByURL(context.Context, string, string)         {}
func (NopLinkCache) IsMissing(context.Context, string) bool               { return false }
func (NopLinkCache) MarkMissing(context.Context, string)                  {}
func (NopLinkCache) ClearMissing(context.Context, string)                 {}
func (NopLinkCache) Ping(context.Context) error                           { return nil }

type RedisLinkCache struct {
	pool   *redis.Pool
	logger *zap.Logger
}

func NewRedisLinkCache(pool *redis.Pool, logger *zap.Logger) *RedisLinkCache {
	return &RedisLinkCache{pool: pool, logger: logger}
}

// NewLinkCache pool 为 nil 时退化为 NopLinkCache
func NewLinkCache(pool *redis.Pool, logger *zap.Logger) LinkCache {
	if pool == nil {
		return NopLinkCache{}
	}
	return NewRedisLinkCache(pool, logger)
}

func (c *RedisLinkCache) GetCodeByURL(ctx context.Context, originalURL string) (string, bool) {
	key := constant.GetURLCodeKey(model.HashURL(originalURL))
	code, err := redis.String(c.do(ctx, "GET", key))
	if err != nil {
		if !errors.Is(err, redis.ErrNil) {
			c.logger.Warn("Error getting from Redis", zap.String("cache_key", key), zap.Error(err))
		}
		return "", false
	}
	return code, code != ""
}

func (c *RedisLinkCache) SetCodeByURL(ctx context.Context, originalURL, shortCode string) {
	key := constant.GetURLCodeKey(model.HashURL(originalURL))
	ttl := int(constant.URLCodeTTL.Seconds())
	if _, err := c.do(ctx, "SET", key, shortCode, "EX", ttl); err != nil {
		c.logger.Error("Failed to set cache", zap.String("cache_key", key), zap.Error(err))
	}
}

func (c *RedisLinkCache) IsMissing(ctx context.Context, shortCode string) bool {
	key := constant.GetMissingCodeKey(shortCode)
	exists, err := redis.Bool(c.do(ctx, "EXISTS", key))
	if err != nil {
		c.logger.Warn("Error checking Redis", zap.String("cache_key", key), zap.Error(err))
		return false
	}
	return exists
}

func (c *RedisLinkCache) MarkMissing(ctx context.Context, shortCode string) {
	key := constant.GetMissingCodeKey(shortCode)
	ttl := int(constant.MissingCodeTTL.Seconds())
	if _, err := c.do(ctx, "SET", key, "", "EX", ttl); err != nil {
		c.logger.Error("Failed to set cache", zap.String("cache_key", key), zap.Error(err))
	}
}

func (c *RedisLinkCache) ClearMissing(ctx context.Context, shortCode string) {
	key := constant.GetMissingCodeKey(shortCode)
	if _, err := c.do(ctx, "DEL", key); err != nil {
		c.logger.Warn("Failed to delete cache", zap.String("cache_key", key), zap.Error(err))
	}
}

func (c *RedisLinkCache) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "PING")
	return err
}

func (c *RedisLinkCache) do(ctx context.Context, cmd string, args ...interface{}) (interface{}, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.logger.Error("Failed to close Redis connection",
				zap.Error(err),
				zap.String("operation", "close"),
				zap.String("connection_type", "redis"),
			)
		}
	}()
	return redis.DoContext(conn, ctx, cmd, args...)
}
