package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/session"
	"github.com/huangsam/wrapped/schema"
)

// WriteSessions writes session history, newest first, in the configured format.
func WriteSessions(w io.Writer, records []schema.SessionRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, records)
	case schema.YAMLOut:
		return writeYAML(w, records)
	case schema.CSVOut:
		header := []string{"id", "descriptor", "transport", "opened_at", "closed_at"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range records {
				closed := ""
				if r.ClosedAt != nil {
					closed = r.ClosedAt.Format(contract.DateTimeFormat)
				}
				row := []string{r.ID, r.Descriptor, r.Transport, r.OpenedAt.Format(contract.DateTimeFormat), closed}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "No sessions recorded yet.")
			return err
		}
		nameWidth := GetMaxTableNameWidth(cfg, 75)
		data := make([][]string, 0, len(records))
		for _, r := range records {
			closed := "active"
			if r.ClosedAt != nil {
				closed = r.ClosedAt.Format(contract.DateTimeFormat)
			}
			data = append(data, []string{
				r.ID,
				contract.TruncateName(r.Descriptor, nameWidth),
				r.Transport,
				r.OpenedAt.Format(contract.DateTimeFormat),
				closed,
			})
		}
		return renderTable(w, []string{"ID", "Descriptor", "Transport", "Opened", "Closed"}, data)
	}
}

// WriteSessionStatus writes store status. Text and CSV share the plain listing.
func WriteSessionStatus(w io.Writer, status schema.SessionStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, status)
	case schema.YAMLOut:
		return writeYAML(w, status)
	default:
		session.PrintSessionStatus(w, status)
		return nil
	}
}
