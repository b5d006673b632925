package postgres

// SQL for report persistence. Station names are stored as BYTEA so that any
// byte sequence round-trips and ORDER BY is bytewise, matching Key.Compare.

const (
	queryReportTablesExist = `
		SELECT COUNT(*) = 2
		FROM information_schema.tables
		WHERE table_name IN ('report_runs', 'station_summaries')
	`

	queryInsertRun = `
		INSERT INTO report_runs (
			id, source, started_at, finished_at,
			lines_read, lines_skipped, complete, station_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	queryInsertStationSummary = `
		INSERT INTO station_summaries (
			run_id, station, min_temp, max_temp, sum_temp, reading_count
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	querySelectRun = `
		SELECT id, source, started_at, finished_at, lines_read, lines_skipped, complete
		FROM report_runs
		WHERE id = $1
	`

	querySelectStationSummaries = `
		SELECT station, min_temp, max_temp, sum_temp, reading_count
		FROM station_summaries
		WHERE run_id = $1
		ORDER BY station ASC
	`
)
