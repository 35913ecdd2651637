// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"listing-discovery-service/internal/app/service"
	"listing-discovery-service/pkg/locker"
)

// RefreshScheduler periodically rebuilds the discovery snapshot so landing
// pages never pay the aggregation cost. Distributed locking ensures only one
// instance refreshes per interval.
type RefreshScheduler struct {
	discovery *service.DiscoveryService
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	locker    locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a new RefreshScheduler with distributed
// locking support.
func NewRefreshScheduler(
	discovery *service.DiscoveryService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RefreshScheduler {
	return &RefreshScheduler{
		discovery: discovery,
		interval:  cfg.Interval,
		timeout:   cfg.Timeout,
		logger:    logger,
		locker:    locker,
	}
}

// Start begins the background refresh job.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting discovery refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping discovery refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("discovery refresh scheduler stopped")
}

func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

// executeRefresh rebuilds the snapshot under a distributed lock.
//
// Lock TTL = interval (cooldown model): on success the lock is held for the
// full interval so other instances skip the window; on failure it is
// released immediately so any instance may retry.
func (s *RefreshScheduler) executeRefresh() {
	const lockKey = "discovery:refresh:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is refreshing discovery, skipping")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if err := s.discovery.Refresh(ctx); err != nil {
		// Release immediately so another instance can retry
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after refresh error", zap.Error(relErr))
		}
		s.logger.Warn("discovery refresh failed, lock released for retry", zap.Error(err))

		return
	}

	// Lock expires naturally after the interval (cooldown period)
	s.logger.Info("discovery snapshot refreshed, lock held for cooldown",
		zap.Duration("cooldown", s.interval),
	)
}
