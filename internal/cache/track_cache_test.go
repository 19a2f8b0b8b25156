package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/parcel-delivery-service/internal/cache"
	"github.com/spec-kit/parcel-delivery-service/internal/domain"
	"github.com/spec-kit/parcel-delivery-service/internal/events"
)

// Without a configured Redis the cache must behave as a permanent miss and
// never panic, so services can call it unconditionally.
func TestTrackCache_DisabledIsMissAndNoop(t *testing.T) {
	t.Parallel()

	trackCache := cache.NewTrackCache(nil, 0, zap.NewNop())
	ctx := context.Background()

	detail, ok := trackCache.Get(ctx, "AB12CD34")
	assert.False(t, ok)
	assert.Nil(t, detail)

	trackCache.Set(ctx, "AB12CD34", &domain.ParcelDetail{})
	trackCache.Invalidate(ctx, "AB12CD34")

	detail, ok = trackCache.Get(ctx, "AB12CD34")
	assert.False(t, ok)
	assert.Nil(t, detail)
}

func TestTrackCache_RegisterInvalidation(t *testing.T) {
	t.Parallel()

	trackCache := cache.NewTrackCache(nil, 0, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	trackCache.RegisterInvalidation(dispatcher)

	// handlers are no-ops without Redis; publishing must still succeed
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:           events.EventParcelStatusChanged,
		TrackingNumber: "AB12CD34",
	})
	assert.NoError(t, err)
}
