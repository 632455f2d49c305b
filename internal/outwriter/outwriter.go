// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/parquet"
	"github.com/huangsam/wrapped/schema"
)

// NoDataMessage is printed when no artifact is selected or loading failed.
const NoDataMessage = "No wrapped data yet. Pass an artifact path or URL, or run 'wrapped session open <descriptor>'."

// noDataPayload is the structured form of the no-data state.
type noDataPayload struct {
	Status string `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	now func() time.Time
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{now: time.Now}
}

// WriteSummary prints a report summary using the configured output format.
// Parquet output exports every section next to the output file's prefix.
func (ow *OutWriter) WriteSummary(report *schema.Report, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		written, err := parquet.ExportReport(report, parquetPrefix(cfg.OutputFile), ow.now())
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Printf("💾 Wrote Parquet to %s\n", path)
		}
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummary(w, report, cfg)
	}, "Wrote summary")
}

// WriteTimeline prints a bucketized timeline using the configured output format.
func (ow *OutWriter) WriteTimeline(res schema.TimelineResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return parquet.WriteTimelinePointsParquet(parquet.ConvertTimeline(res.Concept, res.Points), cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTimeline(w, res, cfg)
	}, "Wrote timeline")
}

// WriteHours prints an hour-of-day series using the configured output format.
func (ow *OutWriter) WriteHours(res schema.HourResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return parquet.WriteTimelinePointsParquet(parquet.ConvertTimeline(res.Concept, res.Points), cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHours(w, res, cfg)
	}, "Wrote hours")
}

// WriteTopSeries prints aligned top-N series using the configured output format.
func (ow *OutWriter) WriteTopSeries(res schema.TopSeriesResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return parquet.WriteSeriesValuesParquet(parquet.ConvertSeries(res), cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTopSeries(w, res, cfg)
	}, "Wrote top series")
}

// WriteChats prints the conversation comparison using the configured output format.
func (ow *OutWriter) WriteChats(chats []schema.ChatDetail, missing bool, extremes schema.ResponseExtremes, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return fmt.Errorf("parquet output is not supported for chats")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteChats(w, chats, missing, extremes, cfg)
	}, "Wrote chats")
}

// WriteSessions prints session history using the configured output format.
func (ow *OutWriter) WriteSessions(records []schema.SessionRecord, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return fmt.Errorf("parquet output is not supported for session history")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSessions(w, records, cfg)
	}, "Wrote sessions")
}

// WriteSessionStatus prints session store status. It never writes Parquet.
func (ow *OutWriter) WriteSessionStatus(status schema.SessionStatus, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return fmt.Errorf("parquet output is not supported for session status")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSessionStatus(w, status, cfg)
	}, "Wrote session status")
}

// WriteNoData prints the empty state. It always writes to stdout so a
// failed load never truncates an existing output file.
func (ow *OutWriter) WriteNoData(w io.Writer, reason string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, noDataPayload{Status: "no_data", Reason: reason})
	case schema.YAMLOut:
		return writeYAML(w, noDataPayload{Status: "no_data", Reason: reason})
	default:
		if _, err := fmt.Fprintln(w, NoDataMessage); err != nil {
			return err
		}
		if reason == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "Reason: %s\n", reason)
		return err
	}
}

// parquetPrefix strips a trailing .parquet so sections can be suffixed onto it.
func parquetPrefix(outputFile string) string {
	return strings.TrimSuffix(outputFile, ".parquet")
}
