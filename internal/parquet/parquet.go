// Package parquet exports bucketized report data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/wrapped/core/bucket"
	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/schema"
	"github.com/parquet-go/parquet-go"
)

// MetricRow is one headline metric of a report.
type MetricRow struct {
	// Source is the artifact descriptor the report was built from
	Source string `parquet:"source,snappy"`

	// Concept is the canonical metric name
	Concept string `parquet:"concept,snappy"`

	// Display is the formatted value, "—" when missing
	Display string `parquet:"display,snappy"`

	// Value is the numeric value (nullable when missing or non-numeric)
	Value *float64 `parquet:"value,optional,snappy"`

	// ExportedAt is when the file was written
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// TimelinePoint is one bucketized timeline point.
type TimelinePoint struct {
	// Concept names the timeline the point belongs to
	Concept string `parquet:"concept,snappy"`

	// Coordinate is the continuous month axis position (or hour of day)
	Coordinate float64 `parquet:"coordinate,snappy"`

	// Label is the original date or hour label
	Label string `parquet:"label,snappy"`

	// Value is the point's magnitude
	Value float64 `parquet:"value,snappy"`
}

// SeriesValue is one cell of a top-N series table in long format.
type SeriesValue struct {
	// Concept names the timeline the series was extracted from
	Concept string `parquet:"concept,snappy"`

	// Label is the axis label of the row
	Label string `parquet:"label,snappy"`

	// Coordinate is the bucket position of Label (nullable when the label is not a date)
	Coordinate *float64 `parquet:"coordinate,optional,snappy"`

	// SeriesKey is the synthetic series key, e.g. "c0"
	SeriesKey string `parquet:"series_key,snappy"`

	// DisplayName is the original category label
	DisplayName string `parquet:"display_name,snappy"`

	// Value is the category's value at Label
	Value float64 `parquet:"value,snappy"`
}

// RankingRow is one entry of a producer-ranked list.
type RankingRow struct {
	// Concept names the ranking
	Concept string `parquet:"concept,snappy"`

	// Rank is the one-based position in the list
	Rank int32 `parquet:"rank,snappy"`

	// Category is the ranked label
	Category string `parquet:"category,snappy"`

	// Score is the producer's score for Category
	Score float64 `parquet:"score,snappy"`
}

// writeParquet writes a slice of rows to a Parquet file, inferring the schema from T.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer; without it the file is unreadable
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteMetricsParquet writes headline metrics to a Parquet file.
func WriteMetricsParquet(data []MetricRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTimelinePointsParquet writes bucketized points to a Parquet file.
func WriteTimelinePointsParquet(data []TimelinePoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesValuesParquet writes long-format series cells to a Parquet file.
func WriteSeriesValuesParquet(data []SeriesValue, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankingsParquet writes ranked lists to a Parquet file.
func WriteRankingsParquet(data []RankingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertMetrics converts report metrics for Parquet export.
func ConvertMetrics(source string, metrics []schema.Metric, exportedAt time.Time) []MetricRow {
	result := make([]MetricRow, len(metrics))
	for i, m := range metrics {
		result[i] = MetricRow{
			Source:     source,
			Concept:    string(m.Concept),
			Display:    m.Display,
			ExportedAt: exportedAt,
		}
		if !m.Missing {
			if f, ok := field.Number(m.Raw); ok {
				result[i].Value = &f
			}
		}
	}
	return result
}

// ConvertTimeline converts bucketized points for Parquet export.
func ConvertTimeline(concept schema.Concept, points []schema.BucketPoint) []TimelinePoint {
	result := make([]TimelinePoint, len(points))
	for i, p := range points {
		result[i] = TimelinePoint{
			Concept:    string(concept),
			Coordinate: p.Coordinate,
			Label:      p.Label,
			Value:      p.Value,
		}
	}
	return result
}

// ConvertSeries flattens aligned series rows into one record per (label, series).
func ConvertSeries(res schema.TopSeriesResult) []SeriesValue {
	labels := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		labels[i] = row.Label
	}
	coords, dated := bucket.Coordinates(labels)

	result := make([]SeriesValue, 0, len(res.Rows)*len(res.Series))
	for i, row := range res.Rows {
		for _, s := range res.Series {
			v := SeriesValue{
				Concept:     string(res.Concept),
				Label:       row.Label,
				SeriesKey:   s.Key,
				DisplayName: s.DisplayName,
				Value:       row.Values[s.Key],
			}
			if dated[i] {
				c := coords[i]
				v.Coordinate = &c
			}
			result = append(result, v)
		}
	}
	return result
}

// ConvertRankings converts ranked lists for Parquet export.
func ConvertRankings(rankings ...schema.RankingResult) []RankingRow {
	var result []RankingRow
	for _, r := range rankings {
		for i, e := range r.Entries {
			result = append(result, RankingRow{
				Concept:  string(r.Concept),
				Rank:     int32(i + 1),
				Category: e.Category,
				Score:    e.Score,
			})
		}
	}
	if result == nil {
		result = []RankingRow{}
	}
	return result
}

// ExportReport writes every section of a report next to prefix and returns the written paths:
// <prefix>_metrics.parquet, <prefix>_timeline.parquet, <prefix>_series.parquet
// and <prefix>_rankings.parquet. Hour-of-day points share the timeline file.
func ExportReport(report *schema.Report, prefix string, exportedAt time.Time) ([]string, error) {
	var points []TimelinePoint
	for _, t := range report.Timelines {
		points = append(points, ConvertTimeline(t.Concept, t.Points)...)
	}
	for _, h := range report.Hours {
		points = append(points, ConvertTimeline(h.Concept, h.Points)...)
	}
	var series []SeriesValue
	for _, ts := range report.TopSeries {
		series = append(series, ConvertSeries(ts)...)
	}

	steps := []struct {
		suffix string
		write  func(string) error
	}{
		{"_metrics.parquet", func(p string) error {
			return WriteMetricsParquet(ConvertMetrics(report.Source, report.Metrics, exportedAt), p)
		}},
		{"_timeline.parquet", func(p string) error { return WriteTimelinePointsParquet(points, p) }},
		{"_series.parquet", func(p string) error { return WriteSeriesValuesParquet(series, p) }},
		{"_rankings.parquet", func(p string) error { return WriteRankingsParquet(ConvertRankings(report.Rankings...), p) }},
	}
	written := make([]string, 0, len(steps))
	for _, step := range steps {
		path := prefix + step.suffix
		if err := step.write(path); err != nil {
			return written, fmt.Errorf("failed to export %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
