// Package report encodes aggregation reports for output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (must be text, json or yaml)", s)
	}
}

// Temperature is a reading rounded to two places the same way the text form is.
// JSON has no infinities, so non-finite values (a mean whose sum overflowed)
// encode as the strings "+Inf", "-Inf" and "NaN". YAML uses .inf and .nan.
type Temperature float64

func newTemperature(v float64) Temperature {
	if !aggregation.IsFinite(v) {
		return Temperature(v)
	}
	return Temperature(aggregation.RoundFixed(v).InexactFloat64())
}

// MarshalJSON emits finite values as numbers with two fractional digits.
func (t Temperature) MarshalJSON() ([]byte, error) {
	text := aggregation.FormatFixed(float64(t))
	if !aggregation.IsFinite(float64(t)) {
		return []byte(strconv.Quote(text)), nil
	}
	return []byte(text), nil
}

// UnmarshalJSON accepts a number or one of the non-finite strings.
func (t *Temperature) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid temperature %s: %w", data, err)
	}
	*t = Temperature(v)
	return nil
}

// MarshalYAML emits a !!float scalar with two fractional digits.
func (t Temperature) MarshalYAML() (interface{}, error) {
	v := float64(t)
	text := aggregation.FormatFixed(v)
	switch {
	case math.IsNaN(v):
		text = ".nan"
	case math.IsInf(v, 1):
		text = ".inf"
	case math.IsInf(v, -1):
		text = "-.inf"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}, nil
}

// StationSummary is the structured form of one report entry.
type StationSummary struct {
	Station string      `json:"station" yaml:"station"`
	Min     Temperature `json:"min" yaml:"min"`
	Mean    Temperature `json:"mean" yaml:"mean"`
	Max     Temperature `json:"max" yaml:"max"`
	Count   int64       `json:"count" yaml:"count"`
}

// Document is the structured form of a whole report.
type Document struct {
	StationCount int              `json:"station_count" yaml:"station_count"`
	Stations     []StationSummary `json:"stations" yaml:"stations"`
}

// Summarize converts one entry to its structured form.
func Summarize(e aggregation.Entry) StationSummary {
	return StationSummary{
		Station: e.Station.String(),
		Min:     newTemperature(e.Stats.Min),
		Mean:    newTemperature(e.Stats.Mean()),
		Max:     newTemperature(e.Stats.Max),
		Count:   e.Stats.Count,
	}
}

// NewDocument converts a report to its structured form.
func NewDocument(r aggregation.Report) Document {
	doc := Document{
		StationCount: len(r),
		Stations:     make([]StationSummary, 0, len(r)),
	}
	for _, e := range r {
		doc.Stations = append(doc.Stations, Summarize(e))
	}
	return doc
}

// Write encodes r to w in the given format.
func Write(w io.Writer, format Format, r aggregation.Report) error {
	switch format {
	case FormatText, "":
		if _, err := io.WriteString(w, r.String()+"\n"); err != nil {
			return fmt.Errorf("write text report: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
