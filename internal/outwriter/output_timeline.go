package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/wrapped/core/bucket"
	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

// WriteTimeline writes a bucketized timeline in the configured format.
func WriteTimeline(w io.Writer, res schema.TimelineResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, res)
	case schema.YAMLOut:
		return writeYAML(w, res)
	case schema.CSVOut:
		header := []string{"coordinate", "label", "month", "value"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, p := range res.Points {
				row := []string{formatRaw(p.Coordinate), p.Label, bucket.MonthLabel(p.Coordinate), formatRaw(p.Value)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return writeTimelineTable(w, res, cfg)
	}
}

// writeTimelineTable prints one row per bucket point.
func writeTimelineTable(w io.Writer, res schema.TimelineResult, cfg *contract.Config) error {
	if res.Missing {
		_, err := fmt.Fprintf(w, "%s: %s\n", res.Title, schema.Placeholder)
		return err
	}
	if err := writeHeading(w, cfg, res.Title); err != nil {
		return err
	}
	data := make([][]string, 0, len(res.Points))
	for _, p := range res.Points {
		data = append(data, []string{
			bucket.MonthLabel(p.Coordinate),
			p.Label,
			strconv.FormatFloat(p.Coordinate, 'f', 3, 64),
			numfmt.CountOrMagnitude(p.Value),
		})
	}
	if err := renderTable(w, []string{"Month", "Date", "Position", "Value"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d points from %s, %d unparseable dates dropped\n", len(res.Points), res.Source, res.Dropped)
	return err
}

// WriteHours writes an hour-of-day series in the configured format.
func WriteHours(w io.Writer, res schema.HourResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, res)
	case schema.YAMLOut:
		return writeYAML(w, res)
	case schema.CSVOut:
		header := []string{"hour", "label", "value", "display"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for i, p := range res.Points {
				row := []string{strconv.Itoa(int(p.Coordinate)), p.Label, formatRaw(p.Value), displayAt(res.Display, i, p.Value)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		if res.Missing {
			_, err := fmt.Fprintf(w, "%s: %s\n", res.Title, schema.Placeholder)
			return err
		}
		if err := writeHeading(w, cfg, res.Title); err != nil {
			return err
		}
		data := make([][]string, 0, len(res.Points))
		for i, p := range res.Points {
			data = append(data, []string{p.Label, displayAt(res.Display, i, p.Value)})
		}
		return renderTable(w, []string{"Hour", "Value"}, data)
	}
}
