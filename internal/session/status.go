package session

import (
	"fmt"
	"io"

	"github.com/huangsam/wrapped/schema"
)

// timeLayout is used for every timestamp in status output.
const timeLayout = "2006-01-02 15:04:05"

// PrintSessionStatus prints session store status information.
func PrintSessionStatus(w io.Writer, status schema.SessionStatus) {
	_, _ = fmt.Fprintf(w, "Session Backend: %s\n", status.Backend)
	if status.Database != "" {
		_, _ = fmt.Fprintf(w, "Database: %s\n", status.Database)
	}
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Sessions: %d\n", status.TotalSessions)
	if status.TotalSessions > 0 {
		_, _ = fmt.Fprintf(w, "Last Opened: %s\n", status.LastOpened.Format(timeLayout))
	}
	if status.Current == nil {
		_, _ = fmt.Fprintln(w, "Current: none")
		return
	}
	_, _ = fmt.Fprintf(w, "Current: %s (%s via %s, opened %s)\n",
		status.Current.ID, status.Current.Descriptor, status.Current.Transport, status.Current.OpenedAt.Format(timeLayout))
}
