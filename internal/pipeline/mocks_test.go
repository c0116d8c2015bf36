package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	"github.com/couchcryptid/outage-listing-service/internal/observability"
)

// --- mocks ---

type mockFetcher struct {
	mu      sync.Mutex
	outages []domain.Outage
	err     error
	calls   int
}

func (m *mockFetcher) Fetch(_ context.Context) ([]domain.Outage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.outages, nil
}

func (m *mockFetcher) set(outages []domain.Outage, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outages = outages
	m.err = err
}

type mockStore struct {
	saved   []domain.Outage
	stored  bool
	saveErr error
	loadErr error
}

func (m *mockStore) Save(_ context.Context, outages []domain.Outage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = outages
	m.stored = true
	return nil
}

func (m *mockStore) Load(_ context.Context) ([]domain.Outage, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	return m.saved, m.stored, nil
}

var errFeedDown = errors.New("feed down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func sampleOutages() []domain.Outage {
	return []domain.Outage{
		{Company: "ACME", Province: "Valle del Cauca", Day: "2024-03-01", Maintenance: []domain.MaintenanceEvent{
			{Time: "8:00", Sectors: []string{"Centro", "Norte"}},
			{Time: "14:00", Sectors: []string{"Sur"}},
		}},
		{Company: "EPM", Province: "Quindío", Day: "2024-03-01", Maintenance: []domain.MaintenanceEvent{
			{Time: "9:00", Sectors: []string{" Centro "}},
		}},
		{Company: "ACME", Province: "Quindío", Day: "2024-03-02", Maintenance: []domain.MaintenanceEvent{
			{Time: "10:00", Sectors: []string{"Sur"}},
		}},
	}
}
