package cmd

import (
	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/spf13/cobra"
)

// chatsCmd renders the conversation comparison.
var chatsCmd = &cobra.Command{
	Use:   "chats [descriptor]",
	Short: "Compare conversations and show response-time extremes.",
	Long: `Render the conversation comparison table of the artifact.

Shows participants, message totals, daily rate, attachments and median response time
for each conversation, followed by the slowest and fastest one-on-one replies.

Examples:
  wrapped chats ./wrapped.json
  wrapped chats --output csv --output-file chats.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChats(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Cannot render chats", err)
		}
	},
}
