package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

// WriteTopSeries writes aligned top-N series in the configured format.
// CSV and text use the wide layout: one row per label, one column per series.
func WriteTopSeries(w io.Writer, res schema.TopSeriesResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, res)
	case schema.YAMLOut:
		return writeYAML(w, res)
	case schema.CSVOut:
		header := []string{"label"}
		for _, s := range res.Series {
			header = append(header, s.DisplayName)
		}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, row := range res.Rows {
				record := []string{row.Label}
				for _, s := range res.Series {
					record = append(record, formatRaw(row.Values[s.Key]))
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return writeTopSeriesTable(w, res, cfg)
	}
}

// writeTopSeriesTable prints the series side by side with a totals row.
func writeTopSeriesTable(w io.Writer, res schema.TopSeriesResult, cfg *contract.Config) error {
	if res.Missing || len(res.Series) == 0 {
		_, err := fmt.Fprintf(w, "%s: %s\n", res.Title, schema.Placeholder)
		return err
	}
	if err := writeHeading(w, cfg, res.Title); err != nil {
		return err
	}

	// Share the width left after the label column between the series columns
	nameWidth := GetMaxTableNameWidth(cfg, 14) / len(res.Series)
	headers := []string{"Label"}
	for _, s := range res.Series {
		headers = append(headers, contract.TruncateName(s.DisplayName, max(nameWidth, 4)))
	}

	data := make([][]string, 0, len(res.Rows)+1)
	for _, row := range res.Rows {
		record := []string{row.Label}
		for _, s := range res.Series {
			record = append(record, numfmt.CountOrMagnitude(row.Values[s.Key]))
		}
		data = append(data, record)
	}
	totals := []string{"Total"}
	for _, s := range res.Series {
		totals = append(totals, numfmt.CountOrMagnitude(s.Total))
	}
	data = append(data, totals)
	return renderTable(w, headers, data)
}
