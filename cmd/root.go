package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/loader"
	"github.com/huangsam/wrapped/internal/session"
	"github.com/huangsam/wrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// sessionManager is the global session manager instance.
var sessionManager contract.SessionManager

// stdinDescriptor selects the artifact piped on stdin.
const stdinDescriptor = "-"

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "wrapped",
	Short:              "Render a wrapped-style recap from a messaging analytics artifact.",
	Long:               `Wrapped turns the JSON artifact of a messaging analytics pipeline into headline metrics, timelines and rankings.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigPaths()

	// Set environment variable prefix
	viper.SetEnvPrefix("WRAPPED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("timeout", contract.DefaultHTTPTimeout.String())
	viper.SetDefault("session-backend", schema.SQLiteBackend)
	viper.SetDefault("session-db-connect", "")
	viper.SetDefault("color", "yes")
}

// setConfigPaths points viper at --config or the default .wrapped.yaml locations.
func setConfigPaths() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".wrapped") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// metricFamilies maps commands to the family their --metric flag belongs to.
var metricFamilies = map[string]string{
	"timeline": contract.TimelineFamily,
	"hours":    contract.HoursFamily,
	"top":      contract.TopFamily,
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, cmd *cobra.Command, args []string) error {
	// Handle profiling flag
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments and the running command (which Viper doesn't do).
	input.DescriptorArg = ""
	if len(args) == 1 {
		input.DescriptorArg = args[0]
	}
	if input.DescriptorArg == stdinDescriptor || input.Artifact == stdinDescriptor {
		handle, err := readStdinBlob(os.Stdin)
		if err != nil {
			return err
		}
		input.DescriptorArg = handle
	}
	input.MetricFamily = metricFamilies[cmd.Name()]

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize the session store with validated config
	return initSessionStore(cfg.SessionBackend, cfg.SessionDBConnect)
}

// readStdinBlob registers the artifact piped on r and returns its handle.
func readStdinBlob(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, loader.DefaultMaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read artifact from stdin: %w", err)
	}
	if int64(len(data)) > loader.DefaultMaxBytes {
		return "", fmt.Errorf("artifact on stdin exceeds %d bytes", loader.DefaultMaxBytes)
	}
	return core.Blobs.Put(data), nil
}

// initSessionStore opens the session store and publishes it as the global manager.
func initSessionStore(backend schema.DatabaseBackend, connStr string) error {
	if err := session.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	SetSessionManager(session.Manager)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigPaths()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetSessionManager sets the global session manager.
func SetSessionManager(mgr contract.SessionManager) {
	sessionManager = mgr
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
