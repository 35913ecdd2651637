package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"listing-discovery-service/internal/domain"
)

// discoveryCacheKey names the single cached snapshot. The first request
// after expiry fixes the limits for the whole TTL window.
const discoveryCacheKey = "discovery:top"

// maxDiscoveryLimit bounds the top-N limits.
const maxDiscoveryLimit = 20

// DiscoverySnapshot is the cached top-categories/top-locations payload.
type DiscoverySnapshot struct {
	Categories []string               `json:"categories"`
	Locations  []domain.LocationCount `json:"locations"`
}

// DiscoveryService serves the "try these instead" top lists, backed by a
// TTL snapshot cache.
//
// There is no lock around recomputation: concurrent readers hitting an
// expired window may each recompute, which is redundant but harmless since
// the aggregations are idempotent and the snapshot is replaced wholesale.
type DiscoveryService struct {
	repo   domain.ListingRepository
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(repo domain.ListingRepository, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Top returns the cached snapshot when fresh, otherwise recomputes both
// aggregations in parallel and replaces the snapshot. Aggregation failures
// propagate to the caller and leave the cache untouched.
func (s *DiscoveryService) Top(ctx context.Context, limitCats, limitLocs int) (*DiscoverySnapshot, error) {
	limitCats = clampLimit(limitCats)
	limitLocs = clampLimit(limitLocs)

	if data, err := s.cache.Get(ctx, discoveryCacheKey); err == nil && data != nil {
		var snap DiscoverySnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			s.logger.Warn("discarding malformed discovery snapshot", zap.Error(err))
		} else {
			return &snap, nil
		}
	}

	snap, err := s.recompute(ctx, limitCats, limitLocs)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := s.cache.Set(ctx, discoveryCacheKey, data, s.ttl); err != nil {
			s.logger.Warn("caching discovery snapshot failed", zap.Error(err))
		}
	}

	return snap, nil
}

// Refresh recomputes the snapshot with default limits and replaces the
// cached copy regardless of freshness. Used by the background refresher to
// keep the landing page warm.
func (s *DiscoveryService) Refresh(ctx context.Context) error {
	snap, err := s.recompute(ctx, clampLimit(0), clampLimit(0))
	if err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, discoveryCacheKey, data, s.ttl)
}

// TopCategories returns the live top-categories aggregation, bypassing the
// snapshot cache.
func (s *DiscoveryService) TopCategories(ctx context.Context, limit int) ([]string, error) {
	return s.repo.TopCategories(ctx, clampLimit(limit))
}

func (s *DiscoveryService) recompute(ctx context.Context, limitCats, limitLocs int) (*DiscoverySnapshot, error) {
	snap := &DiscoverySnapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.repo.TopCategories(ctx, limitCats)
		if err != nil {
			return err
		}
		snap.Categories = categories

		return nil
	})
	g.Go(func() error {
		locations, err := s.repo.TopLocations(ctx, limitLocs)
		if err != nil {
			return err
		}
		snap.Locations = locations

		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("discovery recompute failed", zap.Error(err))

		return nil, err
	}

	s.logger.Debug("discovery snapshot recomputed",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("locations", len(snap.Locations)),
	)

	return snap, nil
}

// clampLimit bounds a top-N limit into [1, 20], defaulting to 8.
func clampLimit(limit int) int {
	if limit == 0 {
		return 8
	}
	if limit < 1 {
		return 1
	}
	if limit > maxDiscoveryLimit {
		return maxDiscoveryLimit
	}

	return limit
}
