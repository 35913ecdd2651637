package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
	"listing-discovery-service/internal/infra/memcache"
)

type manualClock struct {
	t time.Time
}

func (m *manualClock) Now() time.Time { return m.t }

func (m *manualClock) Advance(d time.Duration) { m.t = m.t.Add(d) }

func newGeocodeFixture(geocoder *stubGeocoder) (*GeocodeService, *manualClock) {
	clock := &manualClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := memcache.NewWithClock(clock.Now)

	return NewGeocodeService(geocoder, cache, 10*time.Minute, zap.NewNop()), clock
}

func TestGeocodeService_ForwardCachesWithinTTL(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []domain.GeocodeResult{{Lon: 2.3522, Lat: 48.8566, Label: "Paris, France"}},
	}
	svc, clock := newGeocodeFixture(geocoder)
	ctx := context.Background()

	_, err := svc.Forward(ctx, "Paris", 6)
	require.NoError(t, err)
	require.Equal(t, 1, geocoder.forwardCalls)

	// Nine minutes later the cached copy still serves
	clock.Advance(9 * time.Minute)
	results, err := svc.Forward(ctx, "Paris", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.forwardCalls, "repeat within TTL must not call the provider")
	assert.Equal(t, "Paris, France", results[0].Label)

	// Past the ten-minute TTL the provider is consulted again
	clock.Advance(2 * time.Minute)
	_, err = svc.Forward(ctx, "Paris", 6)
	require.NoError(t, err)
	assert.Equal(t, 2, geocoder.forwardCalls)
}

func TestGeocodeService_KeyNormalizesCase(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []domain.GeocodeResult{{Lon: 13.4, Lat: 52.5, Label: "Berlin"}},
	}
	svc, _ := newGeocodeFixture(geocoder)
	ctx := context.Background()

	_, err := svc.Forward(ctx, "Berlin", 6)
	require.NoError(t, err)

	_, err = svc.Forward(ctx, "  BERLIN ", 6)
	require.NoError(t, err)

	assert.Equal(t, 1, geocoder.forwardCalls, "case and padding variants share a cache entry")
}

func TestGeocodeService_SizeChangesKey(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []domain.GeocodeResult{{Label: "Rome"}},
	}
	svc, _ := newGeocodeFixture(geocoder)
	ctx := context.Background()

	_, err := svc.Forward(ctx, "Rome", 3)
	require.NoError(t, err)

	_, err = svc.Forward(ctx, "Rome", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, geocoder.forwardCalls, "different sizes are distinct cache entries")
}

func TestGeocodeService_ErrorsAreNeverCached(t *testing.T) {
	geocoder := &stubGeocoder{err: domain.ErrLocationNotFound}
	svc, _ := newGeocodeFixture(geocoder)
	ctx := context.Background()

	_, err := svc.Forward(ctx, "nowhere", 6)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	// The failure must not be served from cache; the provider is retried
	geocoder.err = nil
	geocoder.results = []domain.GeocodeResult{{Label: "Nowhere, OK"}}

	results, err := svc.Forward(ctx, "nowhere", 6)
	require.NoError(t, err)
	assert.Equal(t, 2, geocoder.forwardCalls)
	assert.Equal(t, "Nowhere, OK", results[0].Label)
}

func TestGeocodeService_ReverseCachesByRoundedCoordinate(t *testing.T) {
	geocoder := &stubGeocoder{
		reverse: &domain.ReverseResult{Location: "Lisbon", Country: "Portugal", Label: "Lisbon, Portugal"},
	}
	svc, _ := newGeocodeFixture(geocoder)
	ctx := context.Background()

	_, err := svc.Reverse(ctx, -9.142685, 38.736946)
	require.NoError(t, err)

	// Sub-meter jitter rounds to the same key
	result, err := svc.Reverse(ctx, -9.142687, 38.736949)
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.reverseCalls)
	assert.Equal(t, "Lisbon", result.Location)
}

func TestGeocodeService_ReverseProviderErrorPropagates(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("provider down")}
	svc, _ := newGeocodeFixture(geocoder)

	_, err := svc.Reverse(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestGeocodeService_LocateUsesFirstResult(t *testing.T) {
	geocoder := &stubGeocoder{
		results: []domain.GeocodeResult{{Lon: 18.06, Lat: 59.33, Label: "Stockholm, Sweden"}},
	}
	svc, _ := newGeocodeFixture(geocoder)

	point, err := svc.Locate(context.Background(), "Stockholm", "Sweden")
	require.NoError(t, err)
	assert.Equal(t, 18.06, point.Lon)
	assert.Equal(t, 59.33, point.Lat)
	assert.Equal(t, "Stockholm, Sweden", geocoder.lastText)
	assert.Equal(t, 1, geocoder.lastSize)
}
