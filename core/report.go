package core

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/huangsam/wrapped/core/bucket"
	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/core/topn"
	"github.com/huangsam/wrapped/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Builder shapes a loaded artifact into report sections.
// Every method is safe for concurrent use.
type Builder struct {
	table      *field.Table
	bucketizer *bucket.Bucketizer
	logger     *zap.Logger
	topN       int
}

// NewBuilder returns a Builder over the default concept table.
// A nil logger discards diagnostics and topN <= 0 uses schema.DefaultTopN.
func NewBuilder(logger *zap.Logger, topN int) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topN <= 0 {
		topN = schema.DefaultTopN
	}
	return &Builder{
		table:      field.DefaultTable,
		bucketizer: bucket.New(logger),
		logger:     logger,
		topN:       topN,
	}
}

// Title turns a concept name into a display heading, e.g. "Total Messages".
func Title(c schema.Concept) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

// scalarConcepts are rendered as headline metrics.
var scalarConcepts = []schema.Concept{
	schema.TotalMessagesConcept,
	schema.TotalWordsConcept,
	schema.IndividualsMessagedConcept,
}

// hourConcepts maps each hour metric to its concept and value formatter.
var hourConcepts = map[schema.HourMetric]struct {
	concept schema.Concept
	format  func(any) string
}{
	schema.ResponseHours: {schema.ResponseTimeByHourConcept, numfmt.DurationFromMinutes},
	schema.MessagesHours: {schema.MessagesByHourConcept, numfmt.CountOrMagnitude},
	schema.WordsHours:    {schema.WordsPerMessageByHourConcept, numfmt.RoundedMagnitude},
}

// Metric resolves and formats one scalar concept.
func (b *Builder) Metric(a *field.Artifact, c schema.Concept) schema.Metric {
	r := b.table.Resolve(a, c)
	return schema.Metric{
		Concept: c,
		Title:   Title(c),
		Display: numfmt.CountOrMagnitude(r.Value),
		Raw:     r.Value.Raw(),
		Source:  r.Source,
		Missing: r.Value.IsMissing(),
	}
}

// Metrics resolves every headline metric.
func (b *Builder) Metrics(a *field.Artifact) []schema.Metric {
	out := make([]schema.Metric, len(scalarConcepts))
	for i, c := range scalarConcepts {
		out[i] = b.Metric(a, c)
	}
	return out
}

// timelineConcepts maps each timeline metric to its concept.
var timelineConcepts = map[schema.TimelineMetric]schema.Concept{
	schema.MessagesTimeline: schema.MessagesTimelineConcept,
	schema.EmojiTimeline:    schema.EmojiTimelineConcept,
	schema.ChatsTimeline:    schema.TopChatsTimelineConcept,
}

// Timeline bucketizes a dated (labels, values) concept.
func (b *Builder) Timeline(a *field.Artifact, c schema.Concept) schema.TimelineResult {
	r := b.table.ResolvePair(a, c)
	if r.IsMissing() {
		return b.timelineFrom(c, r, nil)
	}
	return b.timelineFrom(c, r, r.Values.Floats())
}

// TimelineFor bucketizes the timeline a metric selects. Category timelines
// are summed across every category per label first.
func (b *Builder) TimelineFor(a *field.Artifact, metric schema.TimelineMetric) schema.TimelineResult {
	c, ok := timelineConcepts[metric]
	if !ok || metric == schema.MessagesTimeline {
		return b.Timeline(a, schema.MessagesTimelineConcept)
	}
	r := b.table.ResolvePair(a, c)
	if r.IsMissing() {
		return b.timelineFrom(c, r, nil)
	}
	labels := r.Labels.Strings()
	sums := make([]float64, len(labels))
	for _, values := range topn.Table(r.Values) {
		for i := range min(len(values), len(sums)) {
			f, _ := field.Number(values[i])
			sums[i] += f
		}
	}
	return b.timelineFrom(c, r, sums)
}

func (b *Builder) timelineFrom(c schema.Concept, r field.ResolvedPair, values []float64) schema.TimelineResult {
	res := schema.TimelineResult{
		Concept: c,
		Title:   Title(c),
		Source:  r.Source,
		Points:  []schema.BucketPoint{},
		Missing: r.IsMissing(),
	}
	if res.Missing {
		return res
	}
	points := bucket.Points(r.Labels.Strings(), values)
	for _, p := range points {
		if _, ok := bucket.ParseDate(p.Label); !ok {
			res.Dropped++
		}
	}
	res.Points = b.bucketizer.Bucketize(points)
	return res
}

// Hours bucketizes an hour-of-day concept and formats every value.
func (b *Builder) Hours(a *field.Artifact, metric schema.HourMetric) schema.HourResult {
	hc, ok := hourConcepts[metric]
	if !ok {
		hc = hourConcepts[schema.ResponseHours]
	}
	r := b.table.ResolvePair(a, hc.concept)
	res := schema.HourResult{
		Concept: hc.concept,
		Title:   Title(hc.concept),
		Source:  r.Source,
		Points:  []schema.BucketPoint{},
		Display: []string{},
		Missing: r.IsMissing(),
	}
	if res.Missing {
		return res
	}
	res.Points = b.bucketizer.BucketizeHours(bucket.Points(r.Labels.Strings(), r.Values.Floats()))
	res.Display = make([]string, len(res.Points))
	for i, p := range res.Points {
		res.Display[i] = hc.format(p.Value)
	}
	return res
}

// TopSeries aligns the top n categories of an emoji or chat timeline.
// When the ranking concept is missing, categories are ranked by their timeline totals.
func (b *Builder) TopSeries(a *field.Artifact, metric schema.TopMetric, n int) schema.TopSeriesResult {
	if n <= 0 {
		n = b.topN
	}
	timelineConcept, rankingConcept := schema.EmojiTimelineConcept, schema.TopEmojisConcept
	if metric == schema.ChatsTop {
		timelineConcept, rankingConcept = schema.TopChatsTimelineConcept, schema.TopChatsByMessagesConcept
	}

	r := b.table.ResolvePair(a, timelineConcept)
	res := schema.TopSeriesResult{
		Concept: timelineConcept,
		Title:   Title(timelineConcept),
		Source:  r.Source,
		Series:  []schema.CategorySeries{},
		Rows:    []schema.SeriesRow{},
		Missing: r.IsMissing(),
	}
	if res.Missing {
		return res
	}

	table := topn.Table(r.Values)
	ranked := b.Ranking(a, rankingConcept).Entries
	if len(ranked) == 0 {
		b.logger.Debug("Ranking by timeline totals", zap.String("concept", string(rankingConcept)))
		ranked = rankByTotals(table)
	}
	built := topn.Build(ranked, n, table, r.Labels.Strings())
	res.Series, res.Rows = built.Series, built.Rows
	return res
}

// rankByTotals orders categories by the sum of their values, then by name.
func rankByTotals(table map[string][]any) []schema.RankedEntry {
	out := make([]schema.RankedEntry, 0, len(table))
	for name, values := range table {
		total := 0.0
		for _, v := range values {
			f, _ := field.Number(v)
			total += f
		}
		out = append(out, schema.RankedEntry{Category: name, Score: total})
	}
	slices.SortFunc(out, func(x, y schema.RankedEntry) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return strings.Compare(x.Category, y.Category)
	})
	return out
}

// Ranking reads a producer-ranked list and formats every score.
func (b *Builder) Ranking(a *field.Artifact, c schema.Concept) schema.RankingResult {
	res := schema.RankingResult{
		Concept: c,
		Title:   Title(c),
		Entries: []schema.RankedEntry{},
		Display: []string{},
	}
	if b.table.IsPair(c) {
		r := b.table.ResolvePair(a, c)
		res.Source, res.Missing = r.Source, r.IsMissing()
		if !res.Missing {
			res.Entries = topn.RankedFromColumns(r.Labels, r.Values)
		}
	} else {
		r := b.table.Resolve(a, c)
		res.Source, res.Missing = r.Source, r.Value.IsMissing()
		if !res.Missing {
			res.Entries = topn.RankedFromPairs(r.Value)
		}
	}
	if res.Entries == nil {
		res.Entries = []schema.RankedEntry{}
	}
	res.Display = make([]string, len(res.Entries))
	for i, e := range res.Entries {
		res.Display[i] = numfmt.CountOrMagnitude(e.Score)
	}
	return res
}

// Chats reads the conversation comparison table. Entries that are not
// objects are skipped; the bool is false when the concept is missing.
func (b *Builder) Chats(a *field.Artifact) ([]schema.ChatDetail, bool) {
	r := b.table.Resolve(a, schema.ConversationComparisonConcept)
	list, ok := r.Value.List()
	if !ok {
		return []schema.ChatDetail{}, false
	}
	out := make([]schema.ChatDetail, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, chatDetail(obj))
	}
	return out, true
}

func chatDetail(obj map[string]any) schema.ChatDetail {
	num := func(key string) float64 {
		f, _ := field.Number(obj[key])
		return f
	}
	d := schema.ChatDetail{
		Name:             field.Label(obj["name"]),
		ParticipantNames: field.Present(obj["participant_names"]).Strings(),
		ParticipantCount: int(num("participant_count")),
		TotalMessages:    num("total_messages"),
		MessagesSentYou:  num("messages_sent_you"),
		MessagesPerDay:   num("messages_per_day"),
		TotalAttachments: num("total_attachments"),
	}
	d.IsGroupChat, _ = obj["is_group_chat"].(bool)
	if median, ok := field.Number(obj["median_response_time_minutes"]); ok {
		d.MedianResponseMinutes = &median
	}
	return d
}

// Extremes reads the fastest and slowest one-on-one response times.
func (b *Builder) Extremes(a *field.Artifact) schema.ResponseExtremes {
	r := b.table.Resolve(a, schema.ResponseExtremesConcept)
	obj, ok := r.Value.Object()
	if !ok {
		return schema.ResponseExtremes{Top: []schema.RankedEntry{}, Bottom: []schema.RankedEntry{}, Missing: true}
	}
	res := schema.ResponseExtremes{
		Top:    topn.RankedFromPairs(field.Present(obj["top"])),
		Bottom: topn.RankedFromPairs(field.Present(obj["bottom"])),
	}
	if res.Top == nil {
		res.Top = []schema.RankedEntry{}
	}
	if res.Bottom == nil {
		res.Bottom = []schema.RankedEntry{}
	}
	return res
}

// BuildReport runs every section pipeline concurrently. A pipeline that
// panics leaves its section at the zero value and is listed in Incomplete;
// the other sections still render. Only context cancellation is returned.
func (b *Builder) BuildReport(ctx context.Context, a *field.Artifact, source string) (*schema.Report, error) {
	report := &schema.Report{
		Source:    source,
		Metrics:   make([]schema.Metric, len(scalarConcepts)),
		Timelines: make([]schema.TimelineResult, 1),
		Hours:     make([]schema.HourResult, 3),
		TopSeries: make([]schema.TopSeriesResult, 2),
		Rankings:  make([]schema.RankingResult, 3),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					b.logger.Warn("Report section failed", zap.String("section", name), zap.Any("panic", r))
					mu.Lock()
					report.Incomplete = append(report.Incomplete, name)
					mu.Unlock()
				}
			}()
			fn()
			return nil
		})
	}

	for i, c := range scalarConcepts {
		run(string(c), func() { report.Metrics[i] = b.Metric(a, c) })
	}
	run(string(schema.MessagesTimelineConcept), func() {
		report.Timelines[0] = b.Timeline(a, schema.MessagesTimelineConcept)
	})
	for i, m := range []schema.HourMetric{schema.ResponseHours, schema.MessagesHours, schema.WordsHours} {
		run(fmt.Sprintf("hours_%s", m), func() { report.Hours[i] = b.Hours(a, m) })
	}
	for i, m := range []schema.TopMetric{schema.EmojiTop, schema.ChatsTop} {
		run(fmt.Sprintf("top_%s", m), func() { report.TopSeries[i] = b.TopSeries(a, m, b.topN) })
	}
	for i, c := range []schema.Concept{schema.TopEmojisConcept, schema.TopChatsByMessagesConcept, schema.TopChatsByAttachmentsConcept} {
		run(string(c), func() { report.Rankings[i] = b.Ranking(a, c) })
	}
	run(string(schema.ConversationComparisonConcept), func() {
		chats, ok := b.Chats(a)
		report.Chats, report.ChatsMissing = chats, !ok
	})
	run(string(schema.ResponseExtremesConcept), func() {
		report.Extremes = b.Extremes(a)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(report.Incomplete)
	return report, nil
}
