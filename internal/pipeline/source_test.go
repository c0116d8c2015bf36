package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/outage-listing-service/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSource_Load_Success(t *testing.T) {
	fetcher := &mockFetcher{outages: sampleOutages()}
	store := &mockStore{}
	metrics := newTestMetrics()
	src := pipeline.NewSource(fetcher, store, discardLogger(), metrics)

	outages, origin := src.Load(context.Background())

	assert.Equal(t, pipeline.OriginFeed, origin)
	assert.Len(t, outages, 3)
	assert.Equal(t, outages, store.saved, "successful fetch is stored as the new snapshot")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedLoads.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SnapshotSaves.WithLabelValues("success")), 0)
}

func TestSource_Load_FailureWithoutStore(t *testing.T) {
	metrics := newTestMetrics()
	src := pipeline.NewSource(&mockFetcher{err: errFeedDown}, nil, discardLogger(), metrics)

	outages, origin := src.Load(context.Background())

	assert.Equal(t, pipeline.OriginEmpty, origin)
	assert.NotNil(t, outages)
	assert.Empty(t, outages)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedLoads.WithLabelValues("error")), 0)
}

func TestSource_Load_FailureFallsBackToSnapshot(t *testing.T) {
	store := &mockStore{saved: sampleOutages(), stored: true}
	metrics := newTestMetrics()
	src := pipeline.NewSource(&mockFetcher{err: errFeedDown}, store, discardLogger(), metrics)

	outages, origin := src.Load(context.Background())

	assert.Equal(t, pipeline.OriginSnapshot, origin)
	assert.Len(t, outages, 3)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.FeedLoads.WithLabelValues("snapshot")), 0)
}

func TestSource_Load_FailureWithEmptyStore(t *testing.T) {
	src := pipeline.NewSource(&mockFetcher{err: errFeedDown}, &mockStore{}, discardLogger(), newTestMetrics())

	outages, origin := src.Load(context.Background())

	assert.Equal(t, pipeline.OriginEmpty, origin)
	assert.Empty(t, outages)
}

func TestSource_Load_StoreErrorsAreSwallowed(t *testing.T) {
	t.Run("load error", func(t *testing.T) {
		store := &mockStore{loadErr: errors.New("redis down")}
		src := pipeline.NewSource(&mockFetcher{err: errFeedDown}, store, discardLogger(), newTestMetrics())

		outages, origin := src.Load(context.Background())
		assert.Equal(t, pipeline.OriginEmpty, origin)
		assert.Empty(t, outages)
	})

	t.Run("save error", func(t *testing.T) {
		store := &mockStore{saveErr: errors.New("redis down")}
		metrics := newTestMetrics()
		src := pipeline.NewSource(&mockFetcher{outages: sampleOutages()}, store, discardLogger(), metrics)

		outages, origin := src.Load(context.Background())
		assert.Equal(t, pipeline.OriginFeed, origin)
		assert.Len(t, outages, 3)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.SnapshotSaves.WithLabelValues("error")), 0)
	})
}
