// Package cmd defines the command-line interface for wrapped.
package cmd

import (
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the session subcommands to the parent session command
	sessionCmd.AddCommand(sessionOpenCmd)
	sessionCmd.AddCommand(sessionCloseCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionHistoryCmd)
	sessionCmd.AddCommand(sessionMigrateCmd)
	sessionCmd.AddCommand(sessionClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("artifact", "", "Artifact path, file:// URL, http(s) URL or '-' for stdin")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultHTTPTimeout.String(), "Timeout for fetching http(s) artifacts")
	rootCmd.PersistentFlags().String("session-backend", string(schema.SQLiteBackend), "Session backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("session-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log structured diagnostics to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// --metric is shared by name; each command validates it against its own family
	timelineCmd.Flags().String("metric", string(schema.MessagesTimeline), "Timeline: messages or emoji or chats")
	hoursCmd.Flags().String("metric", string(schema.ResponseHours), "Hour series: response or messages or words")
	topCmd.Flags().String("metric", string(schema.EmojiTop), "Categories: emoji or chats")

	// Bind all flags of sessionMigrateCmd to Viper
	sessionMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(sessionMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding session migrate flags", err)
	}
}

// bindMetricFlag binds the running command's --metric flag. Three commands
// declare the flag, so it is bound per invocation rather than in init.
func bindMetricFlag(cmd *cobra.Command) error {
	if f := cmd.Flags().Lookup("metric"); f != nil {
		return viper.BindPFlag("metric", f)
	}
	return nil
}

// metricSetupWrapper binds --metric before the shared setup.
func metricSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := bindMetricFlag(cmd); err != nil {
		return err
	}
	return sharedSetupWrapper(cmd, args)
}
