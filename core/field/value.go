package field

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a resolved artifact value. The zero Value is Missing, which is
// distinct from a present value that happens to be 0, false or empty.
type Value struct {
	raw     any
	present bool
}

// Missing is the sentinel returned when no candidate key-path is present.
var Missing = Value{}

// Present wraps a decoded JSON value. A nil raw value is Missing.
func Present(raw any) Value {
	if raw == nil {
		return Missing
	}
	return Value{raw: raw, present: true}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return !v.present
}

// Raw returns the underlying decoded value, or nil when missing.
func (v Value) Raw() any {
	return v.raw
}

// Float returns the value as a finite float64.
func (v Value) Float() (float64, bool) {
	if !v.present {
		return 0, false
	}
	return Number(v.raw)
}

// Str returns the value when it is a JSON string.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Bool returns the value when it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// List returns the value when it is a JSON array.
func (v Value) List() ([]any, bool) {
	l, ok := v.raw.([]any)
	return l, ok
}

// Object returns the value when it is a JSON object.
func (v Value) Object() (map[string]any, bool) {
	o, ok := v.raw.(map[string]any)
	return o, ok
}

// Strings converts a list value into display labels. Non-string scalars
// are rendered with %v semantics; nested containers become "".
func (v Value) Strings() []string {
	list, ok := v.List()
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = Label(item)
	}
	return out
}

// Floats converts a list value into numbers, using 0 for non-numeric entries.
func (v Value) Floats() []float64 {
	list, ok := v.List()
	if !ok {
		return nil
	}
	out := make([]float64, len(list))
	for i, item := range list {
		out[i], _ = Number(item)
	}
	return out
}

// Number converts a decoded scalar into a finite float64. Numeric Go kinds,
// json.Number and numeric strings are accepted; NaN and infinities are not.
func Number(raw any) (float64, bool) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Label renders a scalar as an axis or category label.
func Label(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case map[string]any, []any:
		return ""
	}
	if f, ok := Number(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
