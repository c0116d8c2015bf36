package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	"github.com/couchcryptid/outage-listing-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Snapshot is one immutable load of the feed together with the index built
// from it. Queries always resolve against a snapshot's raw collection.
type Snapshot struct {
	Outages  []domain.Outage
	Index    domain.ProvinceSectorIndex
	Origin   Origin
	LoadedAt time.Time
	Version  uint64
}

// View is everything a presenter needs to render one listing page.
type View struct {
	Query      domain.QueryParameters
	Result     domain.Result
	Pagination domain.Pagination
	Title      string
}

// Catalog owns the current snapshot and answers listing queries against it.
// Reloads build a fresh snapshot and swap it in atomically, so concurrent
// queries never observe a partially built index.
type Catalog struct {
	source   Loader
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	pageSize int
	cache    *lruCache[View]

	current atomic.Pointer[Snapshot]
	loaded  atomic.Bool
	version atomic.Uint64
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the time source used for LoadedAt and the refresh ticker.
func WithClock(c clockwork.Clock) Option {
	return func(cat *Catalog) { cat.clock = c }
}

// WithPageSize overrides domain.PageSize.
func WithPageSize(n int) Option {
	return func(cat *Catalog) {
		if n > 0 {
			cat.pageSize = n
		}
	}
}

// WithQueryCache caches up to n resolved views per snapshot. n <= 0 disables caching.
func WithQueryCache(n int) Option {
	return func(cat *Catalog) {
		if n > 0 {
			cat.cache = newLRUCache[View](n)
		} else {
			cat.cache = nil
		}
	}
}

// NewCatalog creates a Catalog holding an empty snapshot until Load is called.
func NewCatalog(source Loader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Catalog {
	c := &Catalog{
		source:   source,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
		pageSize: domain.PageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current.Store(&Snapshot{
		Outages: []domain.Outage{},
		Index:   domain.BuildIndex(nil),
		Origin:  OriginEmpty,
	})
	return c
}

// Load fetches the feed, builds the province-sector index, and publishes the
// result as the current snapshot.
func (c *Catalog) Load(ctx context.Context) *Snapshot {
	outages, origin := c.source.Load(ctx)

	snap := &Snapshot{
		Outages:  outages,
		Index:    domain.BuildIndex(outages),
		Origin:   origin,
		LoadedAt: c.clock.Now(),
		Version:  c.version.Add(1),
	}
	c.current.Store(snap)
	if c.cache != nil {
		c.cache.purge()
	}

	c.metrics.OutagesLoaded.Set(float64(len(snap.Outages)))
	c.metrics.ProvincesIndexed.Set(float64(snap.Index.Len()))
	if !c.loaded.Swap(true) {
		c.metrics.CatalogReady.Set(1)
	}

	c.logger.Info("outage catalog loaded",
		"origin", origin,
		"outages", len(snap.Outages),
		"provinces", snap.Index.Len(),
		"version", snap.Version,
	)
	return snap
}

// Run reloads the catalog every interval until ctx is cancelled. The initial
// load is the caller's job. A non-positive interval returns immediately.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.logger.Info("catalog refresh started", "interval", interval)

	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("catalog refresh stopping", "reason", ctx.Err())
			return
		case <-ticker.Chan():
			c.Load(ctx)
		}
	}
}

// Snapshot returns the current snapshot. It is never nil.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Query resolves q against the current snapshot. The returned view is
// read-only: cached views and the snapshot share backing arrays with it.
func (c *Catalog) Query(q domain.QueryParameters) View {
	snap := c.Snapshot()
	c.metrics.Queries.Inc()

	key := fmt.Sprintf("%d|%s", snap.Version, q.Values().Encode())
	if c.cache != nil {
		if v, ok := c.cache.get(key); ok {
			c.metrics.QueryCache.WithLabelValues("hit").Inc()
			return v
		}
		c.metrics.QueryCache.WithLabelValues("miss").Inc()
	}

	res := domain.ResolveWithPageSize(q, snap.Outages, snap.Index, c.pageSize)
	c.metrics.QueryResults.Observe(float64(res.Total()))

	v := View{
		Query:      q,
		Result:     res,
		Pagination: domain.Paginate(q, res.TotalPages),
		Title:      res.Title(q),
	}
	if c.cache != nil {
		c.cache.put(key, v)
	}
	return v
}

// CheckReadiness returns nil once the first load attempt has finished, even
// when it produced an empty collection.
func (c *Catalog) CheckReadiness(_ context.Context) error {
	if !c.loaded.Load() {
		return errors.New("outage catalog has not been loaded yet")
	}
	return nil
}
