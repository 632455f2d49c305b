package cmd

import (
	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes the report as Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export [descriptor]",
	Short: "Export every report section to Parquet files.",
	Long: `Write the report as four Parquet files sharing the --output-file prefix:

  <prefix>_metrics.parquet   headline metrics
  <prefix>_timeline.parquet  timeline and hour points
  <prefix>_series.parquet    top-N series in long format
  <prefix>_rankings.parquet  ranked categories

Examples:
  wrapped export ./wrapped.json --output-file out/wrapped`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot export report", err)
		}
	},
}
