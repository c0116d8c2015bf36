package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	"github.com/couchcryptid/outage-listing-service/internal/observability"
)

// Origin records where a loaded collection came from.
type Origin string

const (
	OriginFeed     Origin = "feed"
	OriginSnapshot Origin = "snapshot"
	OriginEmpty    Origin = "empty"
)

// Fetcher retrieves the full raw outage collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Outage, error)
}

// SnapshotStore persists the last good collection between process restarts.
type SnapshotStore interface {
	Save(ctx context.Context, outages []domain.Outage) error
	Load(ctx context.Context) ([]domain.Outage, bool, error)
}

// Loader produces a raw outage collection and never fails.
type Loader interface {
	Load(ctx context.Context) ([]domain.Outage, Origin)
}

// Source loads the outage feed with graceful degradation: a failed fetch is
// logged and replaced by the stored snapshot when one exists, otherwise by an
// empty collection. Errors never reach the caller.
type Source struct {
	fetcher Fetcher
	store   SnapshotStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSource creates a Source. Pass a nil store to disable snapshot fallback.
func NewSource(fetcher Fetcher, store SnapshotStore, logger *slog.Logger, metrics *observability.Metrics) *Source {
	return &Source{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Load fetches the feed once.
func (s *Source) Load(ctx context.Context) ([]domain.Outage, Origin) {
	start := time.Now()
	outages, err := s.fetcher.Fetch(ctx)
	s.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		s.metrics.FeedLoads.WithLabelValues("success").Inc()
		s.saveSnapshot(ctx, outages)
		return outages, OriginFeed
	}

	s.metrics.FeedLoads.WithLabelValues("error").Inc()
	s.logger.Warn("outage feed fetch failed", "error", err)

	if s.store == nil {
		return []domain.Outage{}, OriginEmpty
	}

	snapshot, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("snapshot load failed", "error", err)
		return []domain.Outage{}, OriginEmpty
	}
	if !ok {
		s.logger.Info("no feed snapshot available, serving empty listing")
		return []domain.Outage{}, OriginEmpty
	}

	s.metrics.FeedLoads.WithLabelValues("snapshot").Inc()
	s.logger.Info("serving stored feed snapshot", "outages", len(snapshot))
	return snapshot, OriginSnapshot
}

func (s *Source) saveSnapshot(ctx context.Context, outages []domain.Outage) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, outages); err != nil {
		s.metrics.SnapshotSaves.WithLabelValues("error").Inc()
		s.logger.Warn("snapshot save failed", "error", err)
		return
	}
	s.metrics.SnapshotSaves.WithLabelValues("success").Inc()
}
