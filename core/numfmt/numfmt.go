// Package numfmt renders raw artifact magnitudes as locale-free display strings.
// Every function is total: unusable input renders as schema.Placeholder.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/schema"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 1440
)

// missable is satisfied by field.Value and anything else that can be absent.
type missable interface {
	IsMissing() bool
	Raw() any
}

// toFinite unwraps resolved values and converts x to a finite number.
func toFinite(x any) (float64, bool) {
	if m, ok := x.(missable); ok {
		if m.IsMissing() {
			return 0, false
		}
		x = m.Raw()
	}
	return field.Number(x)
}

// GroupedInteger rounds x half away from zero and inserts "," every three digits.
func GroupedInteger(x any) string {
	f, ok := toFinite(x)
	if !ok {
		return schema.Placeholder
	}
	return groupInt(math.Round(f))
}

// RoundedMagnitude rounds n to two decimals. Whole results render as a grouped
// integer; otherwise up to two fraction digits are kept with trailing zeros trimmed.
func RoundedMagnitude(n any) string {
	f, ok := toFinite(n)
	if !ok {
		return schema.Placeholder
	}
	return roundedMagnitude(f)
}

// CountOrMagnitude uses GroupedInteger for exact integers and RoundedMagnitude otherwise.
func CountOrMagnitude(n any) string {
	f, ok := toFinite(n)
	if !ok {
		return schema.Placeholder
	}
	if f == math.Trunc(f) {
		return groupInt(f)
	}
	return roundedMagnitude(f)
}

// DurationFromMinutes promotes a duration in minutes to the largest sensible unit.
// Exactly 60 and 1440 minutes belong to the larger unit.
func DurationFromMinutes(m any) string {
	f, ok := toFinite(m)
	if !ok {
		return schema.Placeholder
	}
	abs := math.Abs(f)
	switch {
	case abs >= minutesPerDay:
		return pluralize(f/minutesPerDay, "day", "days")
	case abs >= minutesPerHour:
		return pluralize(f/minutesPerHour, "hr", "hrs")
	case abs >= 1:
		return roundedMagnitude(f) + " min"
	default:
		return groupInt(math.Round(f*60)) + " sec"
	}
}

// HourLabel normalizes h into 0..23 and renders it on a 12-hour clock, e.g. "12AM" or "1PM".
func HourLabel(h int) string {
	h = ((h % 24) + 24) % 24
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return strconv.Itoa(display) + suffix
}

// HourLabelAny is HourLabel for raw artifact hour labels.
func HourLabelAny(h any) string {
	f, ok := toFinite(h)
	if !ok {
		return schema.Placeholder
	}
	return HourLabel(int(math.Round(f)))
}

func pluralize(v float64, one, many string) string {
	rounded := round2(v)
	unit := many
	if math.Abs(rounded-1) < 0.005 {
		unit = one
	}
	return roundedMagnitude(v) + " " + unit
}

// maxRoundable is the magnitude above which scaling by 100 drops bits;
// such values already carry no more than two meaningful decimals.
const maxRoundable = float64(1<<53) / 100

func round2(f float64) float64 {
	if math.Abs(f) >= maxRoundable {
		return f
	}
	return math.Round(f*100) / 100
}

func roundedMagnitude(f float64) string {
	r := round2(f)
	if r == math.Trunc(r) {
		return groupInt(r)
	}
	s := strconv.FormatFloat(math.Abs(r), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	sign := ""
	if r < 0 {
		sign = "-"
	}
	whole, _ := strconv.ParseFloat(intPart, 64)
	return sign + groupInt(whole) + "." + frac
}

// groupInt renders a whole float with thousands separators. Negative zero renders as "0".
func groupInt(f float64) string {
	neg := f < 0
	digits := strconv.FormatFloat(math.Abs(f), 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
