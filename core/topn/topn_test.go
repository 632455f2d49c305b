package topn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(names ...string) []schema.RankedEntry {
	out := make([]schema.RankedEntry, len(names))
	for i, n := range names {
		out[i] = schema.RankedEntry{Category: n, Score: float64(len(names) - i)}
	}
	return out
}

func TestBuildKeysIgnoreDisplayNames(t *testing.T) {
	entries := ranked("😂🔥", "a.b[0]", "{weird}", "d", "e")
	res := Build(entries, 2, nil, nil)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "c0", res.Series[0].Key)
	assert.Equal(t, "c1", res.Series[1].Key)
	assert.Equal(t, "😂🔥", res.Series[0].DisplayName)
	assert.Equal(t, "a.b[0]", res.Series[1].DisplayName)
}

func TestBuildDoesNotResort(t *testing.T) {
	entries := []schema.RankedEntry{{Category: "low", Score: 1}, {Category: "high", Score: 100}}
	res := Build(entries, 5, nil, nil)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "low", res.Series[0].DisplayName)
	assert.Equal(t, "high", res.Series[1].DisplayName)
}

func TestBuildRowsAndTotals(t *testing.T) {
	labels := []string{"2025-01-01", "2025-02-15", "2025-03-01"}
	table := map[string][]any{
		"Alice": {1.0, 2.0, 3.0},
		"Bob":   {4.0, "x"},
		"Carol": {100.0, 100.0, 100.0},
	}
	res := Build(ranked("Alice", "Bob", "Carol"), 2, table, labels)

	wantRows := []schema.SeriesRow{
		{Label: "2025-01-01", Values: map[string]float64{"c0": 1, "c1": 4}},
		{Label: "2025-02-15", Values: map[string]float64{"c0": 2, "c1": 0}},
		{Label: "2025-03-01", Values: map[string]float64{"c0": 3, "c1": 0}},
	}
	if diff := cmp.Diff(wantRows, res.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	wantSeries := []schema.CategorySeries{
		{
			Key: "c0", DisplayName: "Alice", Total: 6,
			Points: []schema.SeriesPoint{{Coordinate: 0, Value: 1}, {Coordinate: 1.5, Value: 2}, {Coordinate: 2, Value: 3}},
		},
		{
			Key: "c1", DisplayName: "Bob", Total: 4,
			Points: []schema.SeriesPoint{{Coordinate: 0, Value: 4}, {Coordinate: 1.5, Value: 0}, {Coordinate: 2, Value: 0}},
		},
	}
	if diff := cmp.Diff(wantSeries, res.Series, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMissingCategoryIsZero(t *testing.T) {
	res := Build(ranked("ghost"), 1, map[string][]any{}, []string{"2025-01-01", "oops"})
	require.Len(t, res.Series, 1)
	assert.Equal(t, 0.0, res.Series[0].Total)
	assert.Len(t, res.Series[0].Points, 1)
	assert.Equal(t, 0.0, res.Rows[1].Values["c0"])
}

func TestBuildEdgeSizes(t *testing.T) {
	assert.Empty(t, Build(ranked("a"), 0, nil, nil).Series)
	assert.Empty(t, Build(ranked("a"), -3, nil, nil).Series)
	assert.Empty(t, Build(nil, 5, nil, nil).Series)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	entries := ranked("a", "b", "c")
	table := map[string][]any{"a": {1.0}}
	before := append([]schema.RankedEntry(nil), entries...)
	_ = Build(entries, 2, table, []string{"2025-01-01"})
	assert.Equal(t, before, entries)
	assert.Equal(t, []any{1.0}, table["a"])
}

func TestRankedFromPairs(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []schema.RankedEntry
	}{
		{
			name: "row pairs",
			raw:  []any{[]any{"Alice", 10.0}, []any{"Bob", 4.0}, "junk", []any{5.0, 1.0}},
			want: []schema.RankedEntry{{Category: "Alice", Score: 10}, {Category: "Bob", Score: 4}},
		},
		{
			name: "parallel columns",
			raw:  []any{[]any{"😂", "❤️"}, []any{10.0, 4.0}},
			want: []schema.RankedEntry{{Category: "😂", Score: 10}, {Category: "❤️", Score: 4}},
		},
		{
			name: "two row pairs",
			raw:  []any{[]any{"Alice", 10.0}, []any{"Bob", 4.0}},
			want: []schema.RankedEntry{{Category: "Alice", Score: 10}, {Category: "Bob", Score: 4}},
		},
		{
			name: "not a list",
			raw:  map[string]any{},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RankedFromPairs(field.Present(tt.raw)))
		})
	}
}

func TestTable(t *testing.T) {
	got := Table(field.Present(map[string]any{"a": []any{1.0}, "b": "nope"}))
	assert.Equal(t, map[string][]any{"a": {1.0}}, got)
	assert.Nil(t, Table(field.Missing))
}
