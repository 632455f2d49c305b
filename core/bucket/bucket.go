// Package bucket maps dated and hourly labels onto a continuous chart axis.
//
// Dates land on a 12-unit year axis where whole numbers are month starts and
// the fraction is the position within the month. Points from later years get
// a 0.001 offset per year so identical days in different years do not collide.
// This is an approximation for display within one nominal year, not a real
// multi-year axis.
package bucket

import (
	"sort"
	"strings"
	"time"

	"github.com/huangsam/wrapped/schema"
	"go.uber.org/zap"
)

// YearOffset is the coordinate shift applied per year after the earliest one.
const YearOffset = 0.001

// dateLayouts are tried in order when parsing a label.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Bucketizer carries the logger used to report dropped labels.
// The zero value is not usable; use New.
type Bucketizer struct {
	logger *zap.Logger
}

// New returns a Bucketizer. A nil logger discards diagnostics.
func New(logger *zap.Logger) *Bucketizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bucketizer{logger: logger}
}

var std = New(nil)

// Bucketize is Bucketizer.Bucketize with diagnostics discarded.
func Bucketize(points []schema.TimePoint) []schema.BucketPoint {
	return std.Bucketize(points)
}

// Coordinates is Bucketizer.Coordinates with diagnostics discarded.
func Coordinates(labels []string) ([]float64, []bool) {
	return std.Coordinates(labels)
}

// ParseDate parses a timeline label as a calendar date.
func ParseDate(label string) (time.Time, bool) {
	label = strings.TrimSpace(label)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthFraction returns monthIndex + (day-1)/daysInMonth for t, without any year offset.
func MonthFraction(t time.Time) float64 {
	days := daysIn(t.Year(), t.Month())
	frac := 0.0
	if days > 1 {
		frac = float64(t.Day()-1) / float64(days)
	}
	return float64(t.Month()-1) + frac
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type parsedPoint struct {
	date  time.Time
	label string
	value float64
}

// Bucketize parses each label as a date, drops the ones that do not parse and
// returns points sorted ascending by coordinate. Points on the same calendar
// date are merged by summing their values, keeping the first label seen.
// Empty input yields an empty, non-nil slice.
func (b *Bucketizer) Bucketize(points []schema.TimePoint) []schema.BucketPoint {
	parsed := make([]parsedPoint, 0, len(points))
	for i, p := range points {
		t, ok := ParseDate(p.Label)
		if !ok {
			b.logger.Debug("Dropping unparseable timeline label", zap.String("label", p.Label), zap.Int("index", i))
			continue
		}
		parsed = append(parsed, parsedPoint{date: t, label: p.Label, value: p.Value})
	}
	out := make([]schema.BucketPoint, 0, len(parsed))
	if len(parsed) == 0 {
		return out
	}

	minYear := parsed[0].date.Year()
	for _, p := range parsed[1:] {
		minYear = min(minYear, p.date.Year())
	}

	seen := make(map[string]int, len(parsed))
	for _, p := range parsed {
		day := p.date.Format("2006-01-02")
		if idx, dup := seen[day]; dup {
			b.logger.Debug("Merging duplicate timeline date", zap.String("date", day))
			out[idx].Value += p.value
			continue
		}
		seen[day] = len(out)
		out = append(out, schema.BucketPoint{
			Coordinate: coordinate(p.date, minYear),
			Label:      p.label,
			Value:      p.value,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coordinate < out[j].Coordinate
	})
	return out
}

// Coordinates returns the coordinate of every label, using the earliest
// parseable year as the offset base. ok[i] is false for labels that do not parse.
func (b *Bucketizer) Coordinates(labels []string) (coords []float64, ok []bool) {
	coords = make([]float64, len(labels))
	ok = make([]bool, len(labels))
	dates := make([]time.Time, len(labels))
	minYear, haveYear := 0, false
	for i, l := range labels {
		t, parsed := ParseDate(l)
		if !parsed {
			b.logger.Debug("Skipping unparseable series label", zap.String("label", l), zap.Int("index", i))
			continue
		}
		if !haveYear || t.Year() < minYear {
			minYear, haveYear = t.Year(), true
		}
		dates[i], ok[i] = t, true
	}
	for i := range labels {
		if ok[i] {
			coords[i] = coordinate(dates[i], minYear)
		}
	}
	return coords, ok
}

func coordinate(t time.Time, minYear int) float64 {
	return MonthFraction(t) + float64(t.Year()-minYear)*YearOffset
}

// MonthTicks returns the canonical month-start coordinates 0..11.
func MonthTicks() []float64 {
	ticks := make([]float64, len(monthNames))
	for i := range ticks {
		ticks[i] = float64(i)
	}
	return ticks
}

// MonthName returns the short month name for a tick index, wrapping modulo 12.
func MonthName(i int) string {
	return monthNames[((i%12)+12)%12]
}

// MonthLabel returns the month name a coordinate falls in.
func MonthLabel(coord float64) string {
	return MonthName(int(coord))
}
