package cmd

import (
	"fmt"

	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/session"
	"github.com/huangsam/wrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sessionSetup loads minimal configuration needed for schema operations.
// The store itself is not opened, so clear can remove it and migrate can
// move it to any version.
func sessionSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("session-backend"))
	connStr := viper.GetString("session-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid session backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.SessionBackend = backend
	cfg.SessionDBConnect = connStr
	return nil
}

// sessionSetupWrapper wraps sessionSetup to provide PreRunE for schema commands.
func sessionSetupWrapper(_ *cobra.Command, _ []string) error {
	return sessionSetup()
}

// sessionCmd focused on session management.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Remember an artifact selection between invocations",
	Long: `Manage the explicit artifact selection used when no descriptor is given.

Opening a session records the descriptor; later commands without a descriptor load it.
Opening another session closes the previous one. Nothing is ever selected implicitly.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing persisted)

Subcommands:
  open     - Select an artifact for later commands
  close    - Clear the current selection
  status   - Show store details and the current selection
  history  - List recent selections
  migrate  - Migrate the session schema
  clear    - Remove all recorded sessions

Examples:
  wrapped session open ./wrapped_2024.json
  wrapped summary
  wrapped session close`,
}

// sessionOpenCmd selects an artifact.
var sessionOpenCmd = &cobra.Command{
	Use:   "open <descriptor>",
	Short: "Select an artifact for later commands",
	Long: `Load the artifact once to validate it, then record it as the current session.

Stdin ('-') cannot be opened as a session because it is gone once this command exits.

Examples:
  wrapped session open ./wrapped_2024.json
  wrapped session open https://example.com/wrapped.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSessionOpen(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Failed to open session", err)
		}
	},
}

// sessionCloseCmd clears the current selection.
var sessionCloseCmd = &cobra.Command{
	Use:     "close",
	Short:   "Clear the current artifact selection",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSessionClose(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Failed to close session", err)
		}
	},
}

// sessionStatusCmd shows session store status.
var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display session store details and the current selection",
	Long: `Show information about the session store.

Displays:
- Backend type and connection status
- Total number of recorded sessions
- When the last session was opened
- The current selection, if any

Examples:
  wrapped session status
  wrapped session status --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSessionStatus(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Failed to get session status", err)
		}
	},
}

// sessionHistoryCmd lists recent sessions.
var sessionHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent artifact selections, newest first",
	Long: `List up to --limit recorded sessions, newest first.

Examples:
  wrapped session history --limit 5
  wrapped session history --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSessionHistory(rootCtx, cfg, sessionManager); err != nil {
			contract.LogFatal("Failed to list sessions", err)
		}
	},
}

// sessionMigrateCmd migrates the session schema.
var sessionMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the session schema to a target version",
	Long: `Apply or roll back session schema migrations.

Examples:
  # Migrate to the latest version
  wrapped session migrate

  # Roll back to version 1
  wrapped session migrate --target-version 1

  # Roll back everything
  wrapped session migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := session.Migrate(cfg.SessionBackend, cfg.SessionDBConnect, target); err != nil {
			contract.LogFatal("Failed to migrate sessions", err)
		}
	},
}

// sessionClearCmd removes all sessions.
var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded sessions",
	Long: `Delete all recorded sessions from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the session and migration tables

Examples:
  wrapped session clear

  # Clear MySQL sessions (set connection string via env variable)
  WRAPPED_SESSION_BACKEND=mysql WRAPPED_SESSION_DB_CONNECT="..." wrapped session clear`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := session.Clear(cfg.SessionBackend, cfg.SessionDBConnect); err != nil {
			contract.LogFatal("Failed to clear sessions", err)
		}
		fmt.Println("Sessions cleared successfully.")
	},
}
