package ingestion

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"github.com/aevon-lab/stationstats/internal/core/station"
)

const (
	defaultBufferSize = 64 * 1024
	minBufferSize     = 16
)

// Options tunes how a source is read.
type Options struct {
	// BufferSize is the read buffer size in bytes. Lines longer than the
	// buffer are still handled, at the cost of one copy.
	BufferSize int
}

// DefaultOptions returns the options used by FromFile.
func DefaultOptions() Options {
	return Options{BufferSize: defaultBufferSize}
}

func (o Options) normalized() Options {
	n := o
	if n.BufferSize <= 0 {
		n.BufferSize = defaultBufferSize
	}
	if n.BufferSize < minBufferSize {
		n.BufferSize = minBufferSize
	}
	return n
}

// Summary describes one ingestion pass.
type Summary struct {
	LinesRead       int64
	LinesAccepted   int64
	LinesSkipped    int64
	SkippedByReason map[string]int64
}

// StationMeasurements reads a measurements source line by line and keeps the
// per-station aggregate. A source can be read once; it is not restartable.
type StationMeasurements struct {
	name     string
	source   io.Reader
	closer   io.Closer
	opts     Options
	stations *aggregation.Aggregator
	summary  Summary
}

// FromFile opens path with DefaultOptions.
func FromFile(path string) (*StationMeasurements, error) {
	return FromFileWithOptions(path, DefaultOptions())
}

// FromFileWithOptions opens path for reading. A missing or unreadable file
// is reported as an *OpenError; use IsNotFound or OpenError.Kind to classify it.
func FromFileWithOptions(path string, opts Options) (*StationMeasurements, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	m := FromReaderWithOptions(path, f, opts)
	m.closer = f
	return m, nil
}

// FromReader wraps an already open source. name is used in logs only.
// The caller keeps ownership of r.
func FromReader(name string, r io.Reader) *StationMeasurements {
	return FromReaderWithOptions(name, r, DefaultOptions())
}

// FromReaderWithOptions is FromReader with explicit options.
func FromReaderWithOptions(name string, r io.Reader, opts Options) *StationMeasurements {
	return &StationMeasurements{
		name:     name,
		source:   r,
		opts:     opts.normalized(),
		stations: aggregation.NewAggregator(),
		summary:  Summary{SkippedByReason: make(map[string]int64)},
	}
}

// ReadLines consumes the source to the end, aggregating every valid line and
// silently skipping malformed ones. It returns nil at end of input and a
// *ReadError if the source fails; in that case everything read so far stays
// aggregated.
func (m *StationMeasurements) ReadLines() error {
	lines := newLineReader(bufio.NewReaderSize(m.source, m.opts.BufferSize))

	slog.Debug("[Ingestion] Reading measurements",
		"source", m.name,
		"buffer_size", m.opts.BufferSize)

	for {
		line, err := lines.next()
		if err != nil && !errors.Is(err, io.EOF) {
			readErr := &ReadError{Line: m.summary.LinesRead + 1, Err: err}
			slog.Error("[Ingestion] Read failed, stopping",
				"source", m.name,
				"line", readErr.Line,
				"stations", m.stations.KeyCount(),
				"error", err)
			return readErr
		}

		if len(line) > 0 {
			m.consume(line)
		}

		if err != nil {
			break
		}
	}

	slog.Debug("[Ingestion] Finished reading measurements",
		"source", m.name,
		"lines_read", m.summary.LinesRead,
		"lines_accepted", m.summary.LinesAccepted,
		"lines_skipped", m.summary.LinesSkipped,
		"skipped_by_reason", m.summary.SkippedByReason,
		"stations", m.stations.KeyCount())
	return nil
}

func (m *StationMeasurements) consume(line []byte) {
	m.summary.LinesRead++
	meas, err := ParseLine(line)
	if err != nil {
		m.summary.LinesSkipped++
		m.summary.SkippedByReason[skipReason(err)]++
		return
	}
	m.summary.LinesAccepted++
	m.stations.Observe(meas.Station, meas.Temperature)
}

// Name returns the source name (the file path for FromFile).
func (m *StationMeasurements) Name() string { return m.name }

// Len returns the number of distinct stations.
func (m *StationMeasurements) Len() int { return m.stations.KeyCount() }

// IsEmpty reports whether no station has been aggregated.
func (m *StationMeasurements) IsEmpty() bool { return m.Len() == 0 }

// StatFor returns the stats for one station.
func (m *StationMeasurements) StatFor(key station.Key) (aggregation.TemperatureStats, error) {
	return m.stations.StatFor(key)
}

// Report returns the sorted snapshot of all stations.
func (m *StationMeasurements) Report() aggregation.Report {
	return m.stations.SnapshotSorted()
}

// Summary returns line counters for the pass so far.
func (m *StationMeasurements) Summary() Summary {
	s := m.summary
	s.SkippedByReason = make(map[string]int64, len(m.summary.SkippedByReason))
	for k, v := range m.summary.SkippedByReason {
		s.SkippedByReason[k] = v
	}
	return s
}

// Close releases the underlying file, if StationMeasurements opened it.
// Aggregated results remain available after Close.
func (m *StationMeasurements) Close() error {
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}
