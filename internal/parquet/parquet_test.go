package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/wrapped/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file written by this package.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"metric", new(MetricRow), []string{"source", "concept", "display", "value", "exported_at"}},
		{"timeline", new(TimelinePoint), []string{"concept", "coordinate", "label", "value"}},
		{"series", new(SeriesValue), []string{"concept", "label", "coordinate", "series_key", "display_name", "value"}},
		{"ranking", new(RankingRow), []string{"concept", "rank", "category", "score"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "Column %s should exist in schema", col)
			}
		})
	}
}

func TestConvertMetrics(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := ConvertMetrics("./w.json", []schema.Metric{
		{Concept: schema.TotalMessagesConcept, Display: "1,250", Raw: 1250.0},
		{Concept: schema.TotalWordsConcept, Display: schema.Placeholder, Missing: true},
		{Concept: schema.IndividualsMessagedConcept, Display: schema.Placeholder, Raw: "n/a"},
	}, at)
	require.Len(t, rows, 3)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 1250.0, *rows[0].Value, 1e-9)
	assert.Nil(t, rows[1].Value)
	assert.Nil(t, rows[2].Value)
	assert.Equal(t, "./w.json", rows[0].Source)
}

func TestConvertSeries(t *testing.T) {
	res := schema.TopSeriesResult{
		Concept: schema.EmojiTimelineConcept,
		Series: []schema.CategorySeries{
			{Key: "c0", DisplayName: "😂"},
			{Key: "c1", DisplayName: "❤️"},
		},
		Rows: []schema.SeriesRow{
			{Label: "2024-01-01", Values: map[string]float64{"c0": 3, "c1": 1}},
			{Label: "week 2", Values: map[string]float64{"c0": 0, "c1": 4}},
		},
	}
	rows := ConvertSeries(res)
	require.Len(t, rows, 4)
	assert.Equal(t, "😂", rows[0].DisplayName)
	require.NotNil(t, rows[0].Coordinate)
	assert.InDelta(t, 0.0, *rows[0].Coordinate, 1e-9)
	assert.Nil(t, rows[2].Coordinate, "non-date labels have no coordinate")
	assert.InDelta(t, 4.0, rows[3].Value, 1e-9)
}

func TestConvertRankings(t *testing.T) {
	assert.Empty(t, ConvertRankings())
	rows := ConvertRankings(schema.RankingResult{
		Concept: schema.TopEmojisConcept,
		Entries: []schema.RankedEntry{{Category: "a", Score: 2}, {Category: "b", Score: 1}},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, int32(2), rows[1].Rank)
}

func TestWriteTimelinePointsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "timeline.parquet")
	data := ConvertTimeline(schema.MessagesTimelineConcept, []schema.BucketPoint{
		{Coordinate: 0, Label: "2024-01-01", Value: 12},
		{Coordinate: 1.5, Label: "2024-02-15", Value: 4},
	})
	require.NoError(t, WriteTimelinePointsParquet(data, outputPath))

	readData := readAll[TimelinePoint](t, outputPath)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].Label, readData[i].Label)
		assert.InDelta(t, data[i].Coordinate, readData[i].Coordinate, 1e-9)
		assert.InDelta(t, data[i].Value, readData[i].Value, 1e-9)
	}
}

func TestWriteRankingsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRankingsParquet([]RankingRow{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Parquet footer is written even without rows")
	assert.Empty(t, readAll[RankingRow](t, outputPath))
}

func TestWriteParquet_BadPath(t *testing.T) {
	err := WriteMetricsParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "m.parquet"))
	assert.Error(t, err)
}

func TestExportReport(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "wrapped")
	report := &schema.Report{
		Source:  "./w.json",
		Metrics: []schema.Metric{{Concept: schema.TotalMessagesConcept, Display: "7", Raw: 7.0}},
		Timelines: []schema.TimelineResult{{
			Concept: schema.MessagesTimelineConcept,
			Points:  []schema.BucketPoint{{Coordinate: 0, Label: "2024-01-01", Value: 7}},
		}},
		Hours: []schema.HourResult{{
			Concept: schema.MessagesByHourConcept,
			Points:  []schema.BucketPoint{{Coordinate: 13, Label: "1PM", Value: 2}},
		}},
		Rankings: []schema.RankingResult{{
			Concept: schema.TopEmojisConcept,
			Entries: []schema.RankedEntry{{Category: "😂", Score: 9}},
		}},
	}

	written, err := ExportReport(report, prefix, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{
		prefix + "_metrics.parquet",
		prefix + "_timeline.parquet",
		prefix + "_series.parquet",
		prefix + "_rankings.parquet",
	}, written)

	points := readAll[TimelinePoint](t, prefix+"_timeline.parquet")
	require.Len(t, points, 2)
	assert.Equal(t, string(schema.MessagesByHourConcept), points[1].Concept)

	metrics := readAll[MetricRow](t, prefix+"_metrics.parquet")
	require.Len(t, metrics, 1)
	require.NotNil(t, metrics[0].Value)
	assert.InDelta(t, 7.0, *metrics[0].Value, 1e-9)
}
