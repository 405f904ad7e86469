// Package service provides the core business service that implements the
// dependencies required by the HTTP API: leaderboard aggregation with its
// read-through cache, CSV export, and score submission.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventscore/rankd/internal/adapters/cache"
	"github.com/eventscore/rankd/internal/adapters/repository"
	"github.com/eventscore/rankd/internal/domain/ranking"
	"github.com/eventscore/rankd/pkg/logger"
	"github.com/eventscore/rankd/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultCacheTTL = 30 * time.Second
)

// Service implements leaderboard aggregation and the score write path.
// All computation is synchronous within the calling request; the only shared
// mutable state is the injected cache.
type Service struct {
	store  repository.Store
	cache  cache.Cache
	ranker *ranking.Ranker

	cacheTTL time.Duration
	started  time.Time

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCache sets the snapshot cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithCacheTTL sets the leaderboard snapshot lifetime. This is a performance
// tuning knob, not a correctness contract.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service. Without options it runs fully in-process:
// in-memory store, in-memory cache.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL: defaultCacheTTL,
		started:  time.Now(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryCache()
	}
	s.ranker = ranking.New(ranking.WithLogger(s.log))
	return s
}

// Close releases the store and cache.
func (s *Service) Close() error {
	cerr := s.cache.Close()
	serr := s.store.Close()
	if serr != nil {
		return serr
	}
	return cerr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"cache_ttl_seconds": int(s.cacheTTL / time.Second),
		"uptime_seconds":    int(time.Since(s.started) / time.Second),
	}
}

// leaderboardKey is the cache key for one event's snapshot.
func leaderboardKey(eventID int64) string {
	return fmt.Sprintf("leaderboard:%d", eventID)
}

// invalidate evicts the event's cached snapshot. Failures are logged and
// swallowed; the snapshot then simply ages out within one TTL.
func (s *Service) invalidate(ctx context.Context, eventID int64) {
	if err := s.cache.Delete(ctx, leaderboardKey(eventID)); err != nil {
		s.log.Warn(ctx, "leaderboard cache invalidation failed",
			logger.Int64("eventID", eventID),
			logger.Error(err),
		)
		metrics.RecordCacheError()
		return
	}
	metrics.RecordCacheInvalidation()
}
