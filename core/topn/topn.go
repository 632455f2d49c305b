// Package topn aligns the top-ranked categories of an artifact into parallel series.
package topn

import (
	"strconv"

	"github.com/huangsam/wrapped/core/bucket"
	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/schema"
)

// Result holds the aligned series and the per-label rows that back them.
type Result struct {
	Series []schema.CategorySeries `json:"series"`
	Rows   []schema.SeriesRow      `json:"rows"`
}

// Key returns the synthetic series key for rank position i.
func Key(i int) string {
	return "c" + strconv.Itoa(i)
}

// Build keeps the first n entries of ranked, in the given order, and aligns each
// against table by position: row i takes the i-th value of every category.
// Missing and non-numeric values become 0. Series points carry bucket
// coordinates for labels that parse as dates.
func Build(ranked []schema.RankedEntry, n int, table map[string][]any, labels []string) Result {
	n = max(0, min(n, len(ranked)))
	top := ranked[:n]

	coords, dated := bucket.Coordinates(labels)
	rows := make([]schema.SeriesRow, len(labels))
	for i, l := range labels {
		rows[i] = schema.SeriesRow{Label: l, Values: make(map[string]float64, n)}
	}

	series := make([]schema.CategorySeries, n)
	for rank, entry := range top {
		key := Key(rank)
		values := table[entry.Category]
		s := schema.CategorySeries{
			Key:         key,
			DisplayName: entry.Category,
			Points:      make([]schema.SeriesPoint, 0, len(labels)),
		}
		for i := range labels {
			v := 0.0
			if i < len(values) {
				if f, ok := field.Number(values[i]); ok {
					v = f
				}
			}
			rows[i].Values[key] = v
			s.Total += v
			if dated[i] {
				s.Points = append(s.Points, schema.SeriesPoint{Coordinate: coords[i], Value: v})
			}
		}
		series[rank] = s
	}
	return Result{Series: series, Rows: rows}
}

// RankedFromPairs reads a ranked list in either of the artifact's shapes:
// [[name, score], ...] or [[names...], [scores...]]. Malformed entries are skipped.
func RankedFromPairs(v field.Value) []schema.RankedEntry {
	list, ok := v.List()
	if !ok {
		return nil
	}
	if columns, ok := parallelColumns(list); ok {
		return RankedFromColumns(field.Present(columns[0]), field.Present(columns[1]))
	}
	out := make([]schema.RankedEntry, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		name, ok := pair[0].(string)
		if !ok {
			continue
		}
		score, _ := field.Number(pair[1])
		out = append(out, schema.RankedEntry{Category: name, Score: score})
	}
	return out
}

// RankedFromColumns zips parallel name and score lists.
func RankedFromColumns(names, scores field.Value) []schema.RankedEntry {
	labels := names.Strings()
	values := scores.Floats()
	n := min(len(labels), len(values))
	out := make([]schema.RankedEntry, 0, n)
	for i := range n {
		out = append(out, schema.RankedEntry{Category: labels[i], Score: values[i]})
	}
	return out
}

// parallelColumns detects the [[names...], [scores...]] shape: exactly two
// lists where the first holds only strings and the second only non-strings.
func parallelColumns(list []any) ([][]any, bool) {
	if len(list) != 2 {
		return nil, false
	}
	names, ok1 := list[0].([]any)
	scores, ok2 := list[1].([]any)
	if !ok1 || !ok2 || len(names) == 0 {
		return nil, false
	}
	for _, n := range names {
		if _, ok := n.(string); !ok {
			return nil, false
		}
	}
	for _, s := range scores {
		if _, ok := s.(string); ok {
			return nil, false
		}
	}
	return [][]any{names, scores}, true
}

// Table converts a decoded {category: [values...]} object into a value table.
func Table(v field.Value) map[string][]any {
	obj, ok := v.Object()
	if !ok {
		return nil
	}
	out := make(map[string][]any, len(obj))
	for k, raw := range obj {
		if vals, ok := raw.([]any); ok {
			out[k] = vals
		}
	}
	return out
}
