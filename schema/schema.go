// Package schema has configs, models and global variables for all parts of wrapped.
package schema

// TimePoint is a single labeled value read from an artifact timeline.
// Label is an ISO date or an hour of day; insertion order is not trusted.
type TimePoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// BucketPoint is a TimePoint placed on a continuous chart axis.
type BucketPoint struct {
	Coordinate float64 `json:"coordinate" yaml:"coordinate"`
	Label      string  `json:"label" yaml:"label"`
	Value      float64 `json:"value" yaml:"value"`
}

// RankedEntry is one (category, score) pair of a producer-ranked list.
type RankedEntry struct {
	Category string  `json:"category" yaml:"category"`
	Score    float64 `json:"score" yaml:"score"`
}

// SeriesPoint is one (coordinate, value) pair of a CategorySeries.
type SeriesPoint struct {
	Coordinate float64 `json:"coordinate" yaml:"coordinate"`
	Value      float64 `json:"value" yaml:"value"`
}

// CategorySeries is one keyed time series for a single category.
// Key is synthetic and collision-free; DisplayName is the original label.
type CategorySeries struct {
	Key         string        `json:"key" yaml:"key"`
	DisplayName string        `json:"display_name" yaml:"display_name"`
	Points      []SeriesPoint `json:"points" yaml:"points"`
	Total       float64       `json:"total" yaml:"total"`
}

// SeriesRow maps every series key to its value at one axis label.
type SeriesRow struct {
	Label  string             `json:"label" yaml:"label"`
	Values map[string]float64 `json:"values" yaml:"values"`
}
