package ingestion

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/aevon-lab/stationstats/internal/core/station"
)

const (
	// Delimiter separates the station name from the temperature.
	Delimiter = ';'

	commentPrefix = '#'
)

// Skip classifications. A line rejected with one of these is dropped and
// ingestion continues with the next line.
var (
	ErrCommentLine        = errors.New("comment line")
	ErrMissingDelimiter   = errors.New("missing delimiter")
	ErrInvalidTemperature = errors.New("invalid temperature")
)

// Measurement is one parsed record.
type Measurement struct {
	Station     station.Key
	Temperature float64
}

// ParseLine splits line on the first Delimiter and converts both sides.
// The line may still carry its trailing newline. The station name is used as-is
// (whitespace is part of the name); the temperature is trimmed first.
// Nothing in the returned Measurement references line.
func ParseLine(line []byte) (Measurement, error) {
	if len(line) > 0 && line[0] == commentPrefix {
		return Measurement{}, ErrCommentLine
	}

	name, value, ok := bytes.Cut(line, []byte{Delimiter})
	if !ok {
		return Measurement{}, ErrMissingDelimiter
	}

	key, err := station.NewKey(name)
	if err != nil {
		return Measurement{}, err
	}

	temp, err := parseTemperature(bytes.TrimSpace(value))
	if err != nil {
		return Measurement{}, err
	}

	return Measurement{Station: key, Temperature: temp}, nil
}

// skipReason names a skip classification for diagnostics.
func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrCommentLine):
		return "comment"
	case errors.Is(err, ErrMissingDelimiter):
		return "missing_delimiter"
	case errors.Is(err, station.ErrKeyTooLong):
		return "key_too_long"
	case errors.Is(err, ErrInvalidTemperature):
		return "invalid_temperature"
	default:
		return "unknown"
	}
}

// parseTemperature accepts an optionally signed decimal number with at most one
// decimal point and at least one digit. Exponents, hex, NaN and Inf are rejected.
func parseTemperature(b []byte) (float64, error) {
	if !isDecimal(b) {
		return 0, ErrInvalidTemperature
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, ErrInvalidTemperature
	}
	return v, nil
}

func isDecimal(b []byte) bool {
	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		b = b[1:]
	}
	digits, points := 0, 0
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
			if points > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
