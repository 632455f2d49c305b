package core

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loadFixture(t testing.TB) *field.Artifact {
	t.Helper()
	data, err := os.ReadFile("testdata/artifact.json")
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	return field.NewArtifact(root)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Total Messages", Title(schema.TotalMessagesConcept))
	assert.Equal(t, "Emoji Timeline", Title(schema.EmojiTimelineConcept))
}

func TestMetrics(t *testing.T) {
	b := NewBuilder(nil, 0)
	metrics := b.Metrics(loadFixture(t))
	require.Len(t, metrics, 3)

	assert.Equal(t, "12,345", metrics[0].Display)
	assert.Equal(t, "total_number_messages", metrics[0].Source)
	assert.False(t, metrics[0].Missing)

	// Falls back to the camelCase key.
	assert.Equal(t, "totalWords", metrics[1].Source)
	assert.Equal(t, "67,890.5", metrics[1].Display)

	assert.True(t, metrics[2].Missing)
	assert.Equal(t, schema.Placeholder, metrics[2].Display)
}

func TestTimeline(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBuilder(zap.New(core), 0)
	res := b.Timeline(loadFixture(t), schema.MessagesTimelineConcept)

	assert.False(t, res.Missing)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Points, 2)
	assert.Equal(t, "2023-01-01", res.Points[0].Label)
	assert.Equal(t, 17.0, res.Points[0].Value)
	assert.Equal(t, 20.0, res.Points[1].Value)
	assert.Less(t, res.Points[0].Coordinate, res.Points[1].Coordinate)

	assert.Equal(t, 1, logs.FilterMessage("Dropping unparseable timeline label").Len())
	assert.Equal(t, 1, logs.FilterMessage("Merging duplicate timeline date").Len())
}

func TestTimelineMissing(t *testing.T) {
	b := NewBuilder(nil, 0)
	res := b.Timeline(field.NewArtifact(map[string]any{}), schema.MessagesTimelineConcept)
	assert.True(t, res.Missing)
	assert.NotNil(t, res.Points)
	assert.Empty(t, res.Points)
}

func TestTimelineFor(t *testing.T) {
	b := NewBuilder(nil, 0)
	a := loadFixture(t)

	messages := b.TimelineFor(a, schema.MessagesTimeline)
	assert.Equal(t, schema.MessagesTimelineConcept, messages.Concept)

	emoji := b.TimelineFor(a, schema.EmojiTimeline)
	assert.Equal(t, schema.EmojiTimelineConcept, emoji.Concept)
	require.Len(t, emoji.Points, 2)
	assert.Equal(t, 4.0, emoji.Points[0].Value)  // 3 + 1 + 0
	assert.Equal(t, 13.0, emoji.Points[1].Value) // 4 + "x" + 9

	chats := b.TimelineFor(a, schema.ChatsTimeline)
	assert.True(t, chats.Missing)
}

func TestHours(t *testing.T) {
	b := NewBuilder(nil, 0)
	res := b.Hours(loadFixture(t), schema.ResponseHours)
	require.Len(t, res.Points, 3)

	// Hour 25 wraps onto 1AM.
	labels := []string{res.Points[0].Label, res.Points[1].Label, res.Points[2].Label}
	assert.Equal(t, []string{"12AM", "1AM", "1PM"}, labels)
	assert.Equal(t, 13.0, res.Points[2].Coordinate)
	assert.Equal(t, []string{"30 min", "1 day", "1.5 hrs"}, res.Display)

	messages := b.Hours(loadFixture(t), schema.MessagesHours)
	assert.Equal(t, []string{"100", "200"}, messages.Display)

	missing := b.Hours(loadFixture(t), schema.WordsHours)
	assert.True(t, missing.Missing)
	assert.Empty(t, missing.Display)
}

func TestTopSeries(t *testing.T) {
	b := NewBuilder(nil, 0)
	res := b.TopSeries(loadFixture(t), schema.EmojiTop, 2)
	require.False(t, res.Missing)

	names := make([]string, len(res.Series))
	totals := make([]float64, len(res.Series))
	for i, s := range res.Series {
		names[i] = s.DisplayName
		totals[i] = s.Total
	}
	if diff := cmp.Diff([]string{"😂", "🔥"}, names); diff != "" {
		t.Errorf("series names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{7, 9}, totals)

	require.Len(t, res.Rows, 2)
	want := schema.SeriesRow{Label: "2023-01-02", Values: map[string]float64{"c0": 4, "c1": 9}}
	if diff := cmp.Diff(want, res.Rows[1]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestTopSeries_RankByTotals(t *testing.T) {
	a := field.NewArtifact(map[string]any{
		"top_chats_timeline": map[string]any{
			"dates":         []any{"2023-05-01"},
			"conversations": map[string]any{"b": []any{5.0}, "a": []any{5.0}, "c": []any{9.0}},
		},
	})
	res := NewBuilder(nil, 0).TopSeries(a, schema.ChatsTop, 3)
	require.Len(t, res.Series, 3)
	assert.Equal(t, "c", res.Series[0].DisplayName)
	assert.Equal(t, "a", res.Series[1].DisplayName)
	assert.Equal(t, "b", res.Series[2].DisplayName)
}

func TestRanking(t *testing.T) {
	b := NewBuilder(nil, 0)
	a := loadFixture(t)

	emojis := b.Ranking(a, schema.TopEmojisConcept)
	require.Len(t, emojis.Entries, 3)
	assert.Equal(t, schema.RankedEntry{Category: "🔥", Score: 9}, emojis.Entries[1])
	assert.Equal(t, []string{"7", "9", "1"}, emojis.Display)

	chats := b.Ranking(a, schema.TopChatsByMessagesConcept)
	require.Len(t, chats.Entries, 2)
	assert.Equal(t, "Family", chats.Entries[0].Category)

	attachments := b.Ranking(a, schema.TopChatsByAttachmentsConcept)
	assert.True(t, attachments.Missing)
	assert.NotNil(t, attachments.Entries)
}

func TestChats(t *testing.T) {
	chats, ok := NewBuilder(nil, 0).Chats(loadFixture(t))
	require.True(t, ok)
	require.Len(t, chats, 2)

	assert.True(t, chats[0].IsGroupChat)
	assert.Equal(t, []string{"Mom", "Dad"}, chats[0].ParticipantNames)
	assert.Nil(t, chats[0].MedianResponseMinutes)

	require.NotNil(t, chats[1].MedianResponseMinutes)
	assert.Equal(t, 12.5, *chats[1].MedianResponseMinutes)

	_, ok = NewBuilder(nil, 0).Chats(field.NewArtifact(nil))
	assert.False(t, ok)
}

func TestExtremes(t *testing.T) {
	res := NewBuilder(nil, 0).Extremes(loadFixture(t))
	assert.False(t, res.Missing)
	assert.Equal(t, []schema.RankedEntry{{Category: "Slow Sam", Score: 1440}}, res.Top)
	assert.Equal(t, []schema.RankedEntry{{Category: "Quick Quinn", Score: 0.5}}, res.Bottom)

	missing := NewBuilder(nil, 0).Extremes(field.NewArtifact(nil))
	assert.True(t, missing.Missing)
	assert.NotNil(t, missing.Top)
}

func TestBuildReport(t *testing.T) {
	report, err := NewBuilder(nil, 2).BuildReport(context.Background(), loadFixture(t), "fixture")
	require.NoError(t, err)

	assert.Equal(t, "fixture", report.Source)
	assert.Len(t, report.Metrics, 3)
	assert.Len(t, report.Timelines, 1)
	assert.Len(t, report.Hours, 3)
	assert.Len(t, report.TopSeries, 2)
	assert.Len(t, report.Rankings, 3)
	assert.Len(t, report.Chats, 2)
	assert.Empty(t, report.Incomplete)
	assert.Len(t, report.TopSeries[0].Series, 2)
}

func TestBuildReport_ChatsMissingVersusEmpty(t *testing.T) {
	b := NewBuilder(nil, 0)

	absent, err := b.BuildReport(context.Background(), field.NewArtifact(map[string]any{}), "absent")
	require.NoError(t, err)
	assert.True(t, absent.ChatsMissing)
	assert.Empty(t, absent.Chats)

	empty, err := b.BuildReport(context.Background(), field.NewArtifact(map[string]any{
		"conversation_comparison": []any{},
	}), "empty")
	require.NoError(t, err)
	assert.False(t, empty.ChatsMissing)
	assert.Empty(t, empty.Chats)

	full, err := b.BuildReport(context.Background(), loadFixture(t), "fixture")
	require.NoError(t, err)
	assert.False(t, full.ChatsMissing)
}

func TestBuildReport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder(nil, 0).BuildReport(ctx, loadFixture(t), "fixture")
	assert.ErrorIs(t, err, context.Canceled)
}
