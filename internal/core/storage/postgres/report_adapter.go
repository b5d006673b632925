package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"github.com/aevon-lab/stationstats/internal/core/storage"
	"github.com/google/uuid"
)

// ReportAdapter implements storage.ReportStore using PostgreSQL.
type ReportAdapter struct {
	db *sql.DB
}

// NewReportAdapter creates a ReportAdapter sharing the given connection.
func NewReportAdapter(db *sql.DB) *ReportAdapter {
	return &ReportAdapter{db: db}
}

// Ping reports whether the database is reachable.
func (a *ReportAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// SaveRun writes the run row and one station_summaries row per report entry
// in a single transaction.
func (a *ReportAdapter) SaveRun(ctx context.Context, run *storage.Run) error {
	if run == nil {
		return fmt.Errorf("report save: nil run")
	}
	if run.ID == uuid.Nil {
		return fmt.Errorf("report save: run has no id")
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("report save: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryInsertRun,
		run.ID,
		run.Source,
		run.StartedAt,
		run.FinishedAt,
		run.LinesRead,
		run.LinesSkipped,
		run.Complete,
		len(run.Report),
	); err != nil {
		return fmt.Errorf("report save: insert run: %w", err)
	}

	insertStmt, err := tx.PrepareContext(ctx, queryInsertStationSummary)
	if err != nil {
		return fmt.Errorf("report save: prepare station insert: %w", err)
	}
	defer insertStmt.Close()

	for _, e := range run.Report {
		if _, err := insertStmt.ExecContext(ctx,
			run.ID,
			e.Station.Bytes(),
			e.Stats.Min,
			e.Stats.Max,
			e.Stats.Sum,
			e.Stats.Count,
		); err != nil {
			return fmt.Errorf("report save: insert station %q: %w", e.Station.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("report save: commit: %w", err)
	}

	slog.Info("[ReportAdapter] Saved report run",
		"run_id", run.ID,
		"source", run.Source,
		"stations", len(run.Report),
		"complete", run.Complete)
	return nil
}

// LoadRun reads a run and its station rows.
func (a *ReportAdapter) LoadRun(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	run, err := scanRunRow(a.db.QueryRowContext(ctx, querySelectRun, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("report load: query run: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, querySelectStationSummaries, id)
	if err != nil {
		return nil, fmt.Errorf("report load: query stations: %w", err)
	}
	defer rows.Close()

	report := aggregation.Report{}
	for rows.Next() {
		entry, err := scanSummaryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("report load: %w", err)
		}
		if n := len(report); n > 0 && report[n-1].Station.Compare(entry.Station) >= 0 {
			return nil, fmt.Errorf("report load: stations out of order at %q", entry.Station.String())
		}
		report = append(report, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report load: iterate stations: %w", err)
	}

	run.Report = report
	return run, nil
}
