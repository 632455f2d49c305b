package cmd

import (
	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// timelineCmd bucketizes a dated series.
var timelineCmd = &cobra.Command{
	Use:   "timeline [descriptor]",
	Short: "Show a dated timeline placed on a year-relative axis.",
	Long: `Bucketize a dated series of the artifact.

Each date becomes a point on a 0..12 month axis: month index plus the fraction of the
month elapsed. Later years are nudged by 0.001 per year so equal days never collide.
Unparseable dates are dropped and duplicate dates are merged by summing.

Metrics:
  messages - messages sent per day (default)
  emoji    - emoji usage per day, summed across emojis
  chats    - top chat activity per day, summed across chats

Examples:
  wrapped timeline ./wrapped.json
  wrapped timeline ./wrapped.json --metric emoji --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: metricSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTimeline(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot render timeline", err)
		}
	},
}

// hoursCmd renders an hour-of-day series.
var hoursCmd = &cobra.Command{
	Use:   "hours [descriptor]",
	Short: "Show an hour-of-day series on a 12-hour clock.",
	Long: `Place an hour-of-day series on a 0..23 axis.

Hours outside 0..23 wrap around and are relabeled on a 12-hour clock (12AM, 1AM, ... 11PM).

Metrics:
  response - average response time per hour (default)
  messages - messages sent per hour
  words    - average words per message per hour

Examples:
  wrapped hours ./wrapped.json
  wrapped hours ./wrapped.json --metric messages --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: metricSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHours(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot render hours", err)
		}
	},
}
