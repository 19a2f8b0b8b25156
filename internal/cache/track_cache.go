package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
	"github.com/spec-kit/parcel-delivery-service/internal/persistence"
)

const keyPrefix = "parcel:track:"

// TrackCache is a read-through Redis cache for resolved track responses.
// All methods are no-ops when Redis is not configured, so callers never
// need to branch on cache availability.
type TrackCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTrackCache builds a cache over the optional Redis handle.
func NewTrackCache(r *persistence.Redis, ttl time.Duration, logger *zap.Logger) *TrackCache {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &TrackCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached detail for a tracking number, or false on miss,
// cache disabled, or any Redis failure.
func (c *TrackCache) Get(ctx context.Context, trackingNumber string) (*domain.ParcelDetail, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, keyPrefix+trackingNumber).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var detail domain.ParcelDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("tracking_number", trackingNumber), zap.Error(err))
		return nil, false
	}
	return &detail, true
}

// Set stores the detail under its tracking number.
func (c *TrackCache) Set(ctx context.Context, trackingNumber string, detail *domain.ParcelDetail) {
	if c == nil || c.client == nil || detail == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+trackingNumber, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for a tracking number.
func (c *TrackCache) Invalidate(ctx context.Context, trackingNumber string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+trackingNumber).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Error(err))
	}
}

// RegisterInvalidation subscribes the cache to every parcel-mutating event
// so stale track responses never outlive a write.
func (c *TrackCache) RegisterInvalidation(dispatcher events.Dispatcher) {
	handler := func(ctx context.Context, event events.Event) error {
		c.Invalidate(ctx, event.TrackingNumber)
		return nil
	}
	dispatcher.Subscribe(events.EventCourierAssigned, handler)
	dispatcher.Subscribe(events.EventParcelStatusChanged, handler)
	dispatcher.Subscribe(events.EventParcelDelivered, handler)
}
