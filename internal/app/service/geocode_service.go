package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

// maxGeocodeSize bounds the forward-geocoding result count.
const maxGeocodeSize = 8

// GeocodeService wraps the external geocoding provider with a TTL cache.
// Provider errors and empty results are surfaced to the caller and never
// written to the cache, so transient failures retry on the next request
// instead of becoming cached negatives.
type GeocodeService struct {
	geocoder domain.Geocoder
	cache    domain.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewGeocodeService creates a new GeocodeService.
func NewGeocodeService(geocoder domain.Geocoder, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *GeocodeService {
	return &GeocodeService{
		geocoder: geocoder,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Forward resolves free text to ranked coordinates, serving repeats from
// the cache. The key normalizes the query to lower case and includes the
// requested size.
func (s *GeocodeService) Forward(ctx context.Context, text string, size int) ([]domain.GeocodeResult, error) {
	size = clampSize(size)
	key := fmt.Sprintf("geo:%s:%d", strings.ToLower(strings.TrimSpace(text)), size)

	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var results []domain.GeocodeResult
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
	}

	results, err := s.geocoder.Forward(ctx, text, size)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, results)

	return results, nil
}

// Reverse resolves a coordinate to location/country labels. The key rounds
// coordinates to 5 decimal places (about 1m) to absorb marker-drag jitter.
func (s *GeocodeService) Reverse(ctx context.Context, lon, lat float64) (*domain.ReverseResult, error) {
	key := fmt.Sprintf("rev:%.5f,%.5f", lon, lat)

	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var result domain.ReverseResult
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
	}

	result, err := s.geocoder.Reverse(ctx, lon, lat)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, result)

	return result, nil
}

// Locate geocodes a listing's "location, country" text to a single point.
func (s *GeocodeService) Locate(ctx context.Context, location, country string) (domain.GeoPoint, error) {
	results, err := s.Forward(ctx, fmt.Sprintf("%s, %s", location, country), 1)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	return domain.GeoPoint{Lon: results[0].Lon, Lat: results[0].Lat}, nil
}

func (s *GeocodeService) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("caching geocode result failed", zap.String("key", key), zap.Error(err))
	}
}

func clampSize(size int) int {
	if size == 0 {
		return 6
	}
	if size < 1 {
		return 1
	}
	if size > maxGeocodeSize {
		return maxGeocodeSize
	}

	return size
}
