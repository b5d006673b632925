package aggregation

import "strings"

// Report is a snapshot of the station table sorted by station name.
type Report []Entry

// String renders s as "min/mean/max" with two decimals each.
func (s TemperatureStats) String() string {
	var b strings.Builder
	s.appendTo(&b)
	return b.String()
}

func (s TemperatureStats) appendTo(b *strings.Builder) {
	b.WriteString(FormatFixed(s.Min))
	b.WriteByte('/')
	b.WriteString(FormatFixed(s.Mean()))
	b.WriteByte('/')
	b.WriteString(FormatFixed(s.Max))
}

// String renders the report as "{a=min/mean/max, b=min/mean/max}".
// An empty report renders as "{}".
func (r Report) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Station.String())
		b.WriteByte('=')
		e.Stats.appendTo(&b)
	}
	b.WriteByte('}')
	return b.String()
}
