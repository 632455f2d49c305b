package cmd

import (
	"github.com/huangsam/wrapped/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Wrapped MCP server",
	Long: `Launch an MCP server on stdio so AI agents can read wrapped artifacts via standard tools.

Tools:
  wrapped_summary   - full report
  wrapped_timeline  - bucketized timeline or hour-of-day series
  wrapped_top       - top-N aligned series
  wrapped_format    - number formatting`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, sessionManager)
	},
}
