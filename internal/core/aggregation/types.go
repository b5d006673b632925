package aggregation

import "github.com/aevon-lab/stationstats/internal/core/station"

// TemperatureStats is the running aggregate for one station.
// Count is always >= 1: a value only exists once a station has been observed.
type TemperatureStats struct {
	Min   float64
	Max   float64
	Sum   float64
	Count int64
}

// NewTemperatureStats returns the stats after the first observation of a station.
func NewTemperatureStats(value float64) TemperatureStats {
	return TemperatureStats{Min: value, Max: value, Sum: value, Count: 1}
}

// Observe folds one more reading into s.
func (s *TemperatureStats) Observe(value float64) {
	s.Min = min(s.Min, value)
	s.Max = max(s.Max, value)
	s.Sum += value
	s.Count++
}

// Mean is derived on demand and never stored.
func (s TemperatureStats) Mean() float64 {
	return s.Sum / float64(s.Count)
}

// Entry pairs a station with its stats in a Report.
type Entry struct {
	Station station.Key
	Stats   TemperatureStats
}
