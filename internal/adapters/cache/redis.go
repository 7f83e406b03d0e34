package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

const slugKeyPrefix = "store:slug:"

func redisKey(kind ports.StoreKeyKind, identifier string) string {
	return "store:" + string(kind) + ":" + identifier
}

// Connect builds a redis client with short timeouts and bounded retries.
// Connectivity is probed but a failed ping is only logged: the cache layer is
// allowed to be unavailable, callers fall back to postgres.
func Connect(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	var opt *redis.Options
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse redis url: %w", parseErr)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	opt.MaxRetries = 3
	opt.MinRetryBackoff = 50 * time.Millisecond
	opt.MaxRetryBackoff = 2 * time.Second
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.WarnContext(ctx, "redis ping failed, continuing without warm connection",
			"module", "cache.redis",
			"operation", "connect",
			"error", err,
		)
	}
	return client, nil
}

// RedisStoreCache is the ephemeral cache backend: entries expire after the
// configured TTL and multi-key writes go out as one pipelined round trip.
// The pipeline does not make the two keys visible atomically to other
// readers; that window is accepted and bounded by one round trip.
type RedisStoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStoreCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStoreCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStoreCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisStoreCache) Get(ctx context.Context, identifier string, kind ports.StoreKeyKind) (domain.StoreCacheEntry, bool) {
	raw, err := c.client.Get(ctx, redisKey(kind, identifier)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache read failed",
				"module", "cache.redis",
				"operation", "get",
				"outcome", "miss",
				"kind", string(kind),
				"identifier", identifier,
				"error", err,
			)
		}
		return domain.StoreCacheEntry{}, false
	}
	entry, err := decodeEntry(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, treating as miss",
			"module", "cache.redis",
			"operation", "get",
			"kind", string(kind),
			"identifier", identifier,
			"error", err,
		)
		return domain.StoreCacheEntry{}, false
	}
	return entry, true
}

func (c *RedisStoreCache) Set(ctx context.Context, store domain.Store) error {
	if store.ID == "" {
		return fmt.Errorf("%w: cannot cache store without id", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	idPayload, err := encodeStore(store, now)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, redisKey(ports.StoreKeyID, store.ID), idPayload, c.ttl)
	if store.Slug != "" {
		refPayload, encErr := encodeReference(store, now)
		if encErr != nil {
			return encErr
		}
		pipe.Set(ctx, redisKey(ports.StoreKeySlug, store.Slug), refPayload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			"module", "cache.redis",
			"operation", "set",
			"outcome", "failure",
			"store_id", store.ID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

func (c *RedisStoreCache) Invalidate(ctx context.Context, ref domain.StoreRef) error {
	if ref.ID == "" {
		return nil
	}
	pipe := c.client.Pipeline()
	pipe.Del(ctx, redisKey(ports.StoreKeyID, ref.ID))
	if ref.Slug != "" {
		pipe.Del(ctx, redisKey(ports.StoreKeySlug, ref.Slug))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed",
			"module", "cache.redis",
			"operation", "invalidate",
			"outcome", "failure",
			"store_id", ref.ID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

func (c *RedisStoreCache) ListSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	iter := c.client.Scan(ctx, 0, slugKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		slugs = append(slugs, strings.TrimPrefix(iter.Val(), slugKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return slugs, nil
}
