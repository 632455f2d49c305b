package cmd

import (
	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd renders the headline report.
var summaryCmd = &cobra.Command{
	Use:   "summary [descriptor]",
	Short: "Show headline metrics, rankings and top conversations.",
	Long: `Load an analytics artifact and render the wrapped summary.

The artifact is selected by, in order:
- the positional descriptor
- the --artifact flag (or WRAPPED_ARTIFACT)
- the current session ('wrapped session open')

Descriptors may be filesystem paths, file:// URLs, http(s) URLs or '-' for stdin.
Fields missing from the artifact render as "—" and never fail the command.

Examples:
  # Summarize a local artifact
  wrapped summary ./wrapped_2024.json

  # Summarize a hosted artifact as JSON
  wrapped summary https://example.com/wrapped.json --output json

  # Pipe an artifact in
  cat wrapped.json | wrapped summary -`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot render summary", err)
		}
	},
}
