package cmd

import (
	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// topCmd aligns the top-N categories into parallel series.
var topCmd = &cobra.Command{
	Use:   "top [descriptor]",
	Short: "Show the top-N emoji or chats as aligned series with totals.",
	Long: `Keep the first N categories of a producer ranking and align their timelines.

Every category becomes a series keyed c0, c1, ... in rank order, so category names never
collide with row fields. Missing values are treated as 0.

Metrics:
  emoji - top emojis (default)
  chats - top chats by messages

Examples:
  wrapped top ./wrapped.json --limit 5
  wrapped top ./wrapped.json --metric chats --output csv --output-file chats.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: metricSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTop(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot render top series", err)
		}
	},
}
