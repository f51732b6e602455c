package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/user"
)

const cacheKeyPrefix = "link:"

// RedisLinkCache is a read-through cache around a link.Repository. Only
// GetByShortID is cached since it sits on the redirect hot path; writes
// invalidate the corresponding entry.
type RedisLinkCache struct {
	inner  link.Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLinkCache wraps inner with a Redis cache for short ID lookups.
func NewRedisLinkCache(inner link.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLinkCache {
	return &RedisLinkCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedRecord holds the subset of a record worth caching. The owner's
// password hash never enters Redis.
type cachedRecord struct {
	Link  *link.Link   `json:"link"`
	Owner *cachedOwner `json:"owner,omitempty"`
}

type cachedOwner struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	IsPremium          bool       `json:"isPremium"`
	CustomDomainPrefix string     `json:"customDomainPrefix,omitempty"`
	PremiumExpiresAt   *time.Time `json:"premiumExpiresAt,omitempty"`
}

func (c *RedisLinkCache) GetByShortID(ctx context.Context, shortID string) (*link.Record, error) {
	key := cacheKeyPrefix + shortID

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedRecord
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.record(), nil
		}

		c.logger.Warn("discarding malformed cache entry", zap.String("key", key))
	}

	rec, err := c.inner.GetByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, key, rec); err != nil {
		c.logger.Warn("failed to cache link", zap.String("key", key), zap.Error(err))
	}

	return rec, nil
}

func (c *RedisLinkCache) store(ctx context.Context, key string, rec *link.Record) error {
	cached := cachedRecord{Link: rec.Link}

	if rec.Owner != nil {
		cached.Owner = &cachedOwner{
			ID:                 rec.Owner.ID,
			Email:              rec.Owner.Email,
			IsPremium:          rec.Owner.IsPremium,
			CustomDomainPrefix: rec.Owner.CustomDomainPrefix,
			PremiumExpiresAt:   rec.Owner.PremiumExpiresAt,
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (r cachedRecord) record() *link.Record {
	rec := &link.Record{Link: r.Link}

	if r.Owner != nil {
		rec.Owner = &user.User{
			ID:                 r.Owner.ID,
			Email:              r.Owner.Email,
			IsPremium:          r.Owner.IsPremium,
			CustomDomainPrefix: r.Owner.CustomDomainPrefix,
			PremiumExpiresAt:   r.Owner.PremiumExpiresAt,
		}
	}

	return rec
}

func (c *RedisLinkCache) invalidate(ctx context.Context, shortID string) {
	if err := c.client.Del(ctx, cacheKeyPrefix+shortID).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached link", zap.String("shortId", shortID), zap.Error(err))
	}
}

func (c *RedisLinkCache) Create(ctx context.Context, l *link.Link) error {
	return c.inner.Create(ctx, l)
}

func (c *RedisLinkCache) GetByShortIDAndOwner(ctx context.Context, shortID string, ownerID uuid.UUID) (*link.Link, error) {
	return c.inner.GetByShortIDAndOwner(ctx, shortID, ownerID)
}

func (c *RedisLinkCache) GetPublicByShortID(ctx context.Context, shortID string) (*link.Link, error) {
	return c.inner.GetPublicByShortID(ctx, shortID)
}

func (c *RedisLinkCache) ShortIDExists(ctx context.Context, shortID string) (bool, error) {
	return c.inner.ShortIDExists(ctx, shortID)
}

func (c *RedisLinkCache) AliasExists(ctx context.Context, alias string) (bool, error) {
	return c.inner.AliasExists(ctx, alias)
}

func (c *RedisLinkCache) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*link.Link, error) {
	return c.inner.ListByOwner(ctx, ownerID)
}

func (c *RedisLinkCache) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*link.Link, error) {
	return c.inner.GetByIDAndOwner(ctx, id, ownerID)
}

func (c *RedisLinkCache) Update(ctx context.Context, l *link.Link) error {
	if err := c.inner.Update(ctx, l); err != nil {
		return err
	}

	c.invalidate(ctx, l.ShortID)

	return nil
}

func (c *RedisLinkCache) Delete(ctx context.Context, l *link.Link) error {
	if err := c.inner.Delete(ctx, l); err != nil {
		return err
	}

	c.invalidate(ctx, l.ShortID)

	return nil
}

// Compile-time check.
var _ link.Repository = (*RedisLinkCache)(nil)
