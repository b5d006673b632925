package aggregation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aevon-lab/stationstats/internal/core/station"
)

// ErrStationNotFound is returned when stats are requested for a station that was never observed.
var ErrStationNotFound = errors.New("station not found")

// Aggregator owns the station table and applies single-pass updates to it.
// It is not safe for concurrent writers; readers may share it once ingestion is done.
type Aggregator struct {
	stations map[station.Key]*TemperatureStats
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stations: make(map[station.Key]*TemperatureStats)}
}

// Observe records value for key: the first reading creates the stats,
// later readings widen min/max and accumulate sum/count in place.
func (a *Aggregator) Observe(key station.Key, value float64) {
	if s, ok := a.stations[key]; ok {
		s.Observe(value)
		return
	}
	s := NewTemperatureStats(value)
	a.stations[key] = &s
}

// StatFor returns a copy of the stats for key, or an error wrapping
// ErrStationNotFound when key was never observed.
func (a *Aggregator) StatFor(key station.Key) (TemperatureStats, error) {
	s, ok := a.stations[key]
	if !ok {
		return TemperatureStats{}, fmt.Errorf("%w: %q", ErrStationNotFound, key.String())
	}
	return *s, nil
}

// KeyCount returns the number of distinct stations observed.
func (a *Aggregator) KeyCount() int {
	return len(a.stations)
}

// SnapshotSorted returns every station with its current stats in ascending
// bytewise order of the station name.
func (a *Aggregator) SnapshotSorted() Report {
	report := make(Report, 0, len(a.stations))
	for key, s := range a.stations {
		report = append(report, Entry{Station: key, Stats: *s})
	}
	slices.SortFunc(report, func(x, y Entry) int {
		return x.Station.Compare(y.Station)
	})
	return report
}
