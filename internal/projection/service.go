package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"github.com/aevon-lab/stationstats/internal/core/station"
	"github.com/aevon-lab/stationstats/internal/core/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrStoreDisabled is returned by run queries when no report store is configured.
var ErrStoreDisabled = errors.New("report store not configured")

// ReportSource is the read side of a finished ingestion.
// *ingestion.StationMeasurements implements it.
type ReportSource interface {
	Report() aggregation.Report
	StatFor(key station.Key) (aggregation.TemperatureStats, error)
}

// Service answers queries over the current report and over persisted runs.
// The current report is rendered once and reused; persisted runs are cached
// after the first load because stored runs never change.
type Service struct {
	current ReportSource
	store   storage.ReportStore

	reportOnce sync.Once
	report     aggregation.Report
	rendered   string

	mu        sync.RWMutex
	runs      map[uuid.UUID]*storage.Run
	loadGroup singleflight.Group // Dedupe concurrent loads of the same run
}

// NewService creates a query service. store may be nil.
func NewService(current ReportSource, store storage.ReportStore) *Service {
	return &Service{
		current: current,
		store:   store,
		runs:    make(map[uuid.UUID]*storage.Run),
	}
}

// CurrentReport returns the sorted report and its text rendering.
// current must not be written to once the service is serving.
func (s *Service) CurrentReport() (aggregation.Report, string) {
	s.reportOnce.Do(func() {
		s.report = s.current.Report()
		s.rendered = s.report.String()
	})
	return s.report, s.rendered
}

// Station returns one station's stats from the current report.
func (s *Service) Station(name string) (aggregation.Entry, error) {
	key, err := station.ParseKey(name)
	if err != nil {
		return aggregation.Entry{}, err
	}
	stats, err := s.current.StatFor(key)
	if err != nil {
		return aggregation.Entry{}, err
	}
	return aggregation.Entry{Station: key, Stats: stats}, nil
}

// Run loads a persisted run by ID.
func (s *Service) Run(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}

	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if ok {
		return run, nil
	}

	v, err, shared := s.loadGroup.Do(id.String(), func() (interface{}, error) {
		// Double-check cache after acquiring singleflight slot
		s.mu.RLock()
		if cached, ok := s.runs[id]; ok {
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()

		loaded, err := s.store.LoadRun(ctx, id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.runs[id] = loaded
		s.mu.Unlock()

		slog.Debug("[Projection] Loaded report run", "run_id", id, "stations", len(loaded.Report))
		return loaded, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	if shared {
		slog.Debug("[Projection] Shared concurrent run load", "run_id", id)
	}
	return v.(*storage.Run), nil
}
