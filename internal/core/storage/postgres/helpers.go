package postgres

import (
	"fmt"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"github.com/aevon-lab/stationstats/internal/core/station"
	"github.com/aevon-lab/stationstats/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRunRow scans a report_runs row. The report is filled in separately.
func scanRunRow(row scanner) (*storage.Run, error) {
	var run storage.Run
	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.StartedAt,
		&run.FinishedAt,
		&run.LinesRead,
		&run.LinesSkipped,
		&run.Complete,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// scanSummaryRow scans a station_summaries row into a report entry.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSummaryRow(row scanner) (aggregation.Entry, error) {
	var (
		name  []byte
		stats aggregation.TemperatureStats
	)
	if err := row.Scan(&name, &stats.Min, &stats.Max, &stats.Sum, &stats.Count); err != nil {
		return aggregation.Entry{}, fmt.Errorf("failed to scan station summary row: %w", err)
	}
	key, err := station.NewKey(name)
	if err != nil {
		return aggregation.Entry{}, fmt.Errorf("stored station name: %w", err)
	}
	if stats.Count < 1 {
		return aggregation.Entry{}, fmt.Errorf("stored station %q has reading_count %d", key.String(), stats.Count)
	}
	return aggregation.Entry{Station: key, Stats: stats}, nil
}
