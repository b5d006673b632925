package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no report run exists for the requested ID.
var ErrRunNotFound = errors.New("report run not found")

// Run is one completed ingestion pass and its final report.
// Complete is false when the source failed mid-stream and Report is partial.
type Run struct {
	ID           uuid.UUID
	Source       string
	StartedAt    time.Time
	FinishedAt   time.Time
	LinesRead    int64
	LinesSkipped int64
	Complete     bool
	Report       aggregation.Report
}

// NewRun allocates a Run with a fresh random ID.
func NewRun(source string, startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.New(),
		Source:    source,
		StartedAt: startedAt.UTC(),
	}
}

// ReportStore persists final reports. Only finished runs are stored;
// nothing is ever resumed from a stored run.
type ReportStore interface {
	// SaveRun stores the run and all of its station rows atomically.
	SaveRun(ctx context.Context, run *Run) error

	// LoadRun returns the run with the given ID, its report sorted by station.
	// Returns ErrRunNotFound if no such run exists.
	LoadRun(ctx context.Context, id uuid.UUID) (*Run, error)
}
