package bucket

import (
	"math"
	"sort"

	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/schema"
	"go.uber.org/zap"
)

// BucketizeHours is Bucketizer.BucketizeHours with diagnostics discarded.
func BucketizeHours(points []schema.TimePoint) []schema.BucketPoint {
	return std.BucketizeHours(points)
}

// BucketizeHours places hour-of-day labels on a 0..23 axis. Labels are
// normalized modulo 24 and relabeled on a 12-hour clock; duplicates after
// normalization are summed. Non-numeric labels are dropped.
func (b *Bucketizer) BucketizeHours(points []schema.TimePoint) []schema.BucketPoint {
	out := make([]schema.BucketPoint, 0, len(points))
	seen := make(map[int]int, len(points))
	for i, p := range points {
		f, ok := field.Number(p.Label)
		if !ok {
			b.logger.Debug("Dropping unparseable hour label", zap.String("label", p.Label), zap.Int("index", i))
			continue
		}
		h := int(math.Round(f))
		h = ((h % 24) + 24) % 24
		if idx, dup := seen[h]; dup {
			b.logger.Debug("Merging duplicate hour", zap.Int("hour", h))
			out[idx].Value += p.Value
			continue
		}
		seen[h] = len(out)
		out = append(out, schema.BucketPoint{
			Coordinate: float64(h),
			Label:      numfmt.HourLabel(h),
			Value:      p.Value,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coordinate < out[j].Coordinate
	})
	return out
}

// Points zips parallel label and value lists into time points, stopping at
// the shorter of the two.
func Points(labels []string, values []float64) []schema.TimePoint {
	n := min(len(labels), len(values))
	out := make([]schema.TimePoint, n)
	for i := range n {
		out[i] = schema.TimePoint{Label: labels[i], Value: values[i]}
	}
	return out
}
