package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/wrapped/core/field"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
)

// WriteSummary writes the headline metrics and rankings of a report in the configured format.
func WriteSummary(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.YAMLOut:
		return writeYAML(w, report)
	case schema.CSVOut:
		return writeSummaryCSV(w, report)
	default:
		return writeSummaryTable(w, report, cfg)
	}
}

// writeSummaryCSV writes metrics and ranking entries as one long table.
func writeSummaryCSV(w io.Writer, report *schema.Report) error {
	header := []string{"section", "concept", "name", "display", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range report.Metrics {
			value := ""
			if f, ok := field.Number(m.Raw); ok && !m.Missing {
				value = formatRaw(f)
			}
			if err := cw.Write([]string{"metric", string(m.Concept), m.Title, m.Display, value}); err != nil {
				return err
			}
		}
		for _, r := range report.Rankings {
			for i, e := range r.Entries {
				if err := cw.Write([]string{"ranking", string(r.Concept), e.Category, displayAt(r.Display, i, e.Score), formatRaw(e.Score)}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeSummaryTable prints metrics, rankings and the leading chats as tables.
func writeSummaryTable(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	if err := writeHeading(w, cfg, fmt.Sprintf("Wrapped summary for %s", report.Source)); err != nil {
		return err
	}

	var data [][]string
	for _, m := range report.Metrics {
		data = append(data, []string{m.Title, m.Display})
	}
	if err := renderTable(w, []string{"Metric", "Value"}, data); err != nil {
		return err
	}

	for _, r := range report.Rankings {
		if err := writeRankingTable(w, r, cfg); err != nil {
			return err
		}
	}

	if report.ChatsMissing || len(report.Chats) == 0 {
		if _, err := fmt.Fprintf(w, "Conversations: %s\n", schema.Placeholder); err != nil {
			return err
		}
	} else {
		limit := min(len(report.Chats), cfg.ResultLimit)
		if err := writeHeading(w, cfg, "Conversations"); err != nil {
			return err
		}
		if err := writeChatsTable(w, report.Chats[:limit], cfg); err != nil {
			return err
		}
	}

	if len(report.Incomplete) > 0 {
		if _, err := fmt.Fprintf(w, "Incomplete sections: %s\n", strings.Join(report.Incomplete, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// writeRankingTable prints up to cfg.ResultLimit entries of a ranked list.
// Missing or empty rankings print a single placeholder line.
func writeRankingTable(w io.Writer, r schema.RankingResult, cfg *contract.Config) error {
	if r.Missing || len(r.Entries) == 0 {
		_, err := fmt.Fprintf(w, "%s: %s\n", r.Title, schema.Placeholder)
		return err
	}
	if err := writeHeading(w, cfg, r.Title); err != nil {
		return err
	}
	limit := min(len(r.Entries), cfg.ResultLimit)
	nameWidth := GetMaxTableNameWidth(cfg, 20)
	data := make([][]string, 0, limit)
	for i, e := range r.Entries[:limit] {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(e.Category, nameWidth),
			displayAt(r.Display, i, e.Score),
		})
	}
	return renderTable(w, []string{"Rank", "Name", "Value"}, data)
}
