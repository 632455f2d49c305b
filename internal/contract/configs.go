package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/wrapped/schema"
	"go.uber.org/zap"
)

// Default values for configuration.
const (
	DefaultResultLimit = schema.DefaultTopN
	MaxResultLimit     = 100
	DefaultHTTPTimeout = 30 * time.Second
	MaxHTTPTimeout     = 10 * time.Minute
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for rendering.
// This struct remains the "final, validated" config.
type Config struct {
	Descriptor  string // Explicit selection from args or --artifact; may be empty
	ResultLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	HTTPTimeout time.Duration

	TimelineMetric schema.TimelineMetric
	HourMetric     schema.HourMetric
	TopMetric      schema.TopMetric

	SessionBackend   schema.DatabaseBackend
	SessionDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
	Verbose   bool

	// Logger receives structured diagnostics; it is a no-op unless Verbose is set.
	Logger *zap.Logger
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args and the running command, so no tag
	DescriptorArg string
	MetricFamily  string

	// --- Fields from rootCmd.PersistentFlags() ---
	Artifact         string `mapstructure:"artifact"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Timeout          string `mapstructure:"timeout"`
	SessionBackend   string `mapstructure:"session-backend"`
	SessionDBConnect string `mapstructure:"session-db-connect"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`

	// --- Fields from subcommand flags ---
	Limit  int    `mapstructure:"limit"`
	Metric string `mapstructure:"metric"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processMetric(cfg, input); err != nil {
		return err
	}
	cfg.Descriptor = resolveDescriptor(input)
	cfg.Logger = NewLogger(cfg.Verbose)
	return nil
}

// resolveDescriptor prefers the positional argument over --artifact.
func resolveDescriptor(input *ConfigRawInput) string {
	if d := strings.TrimSpace(input.DescriptorArg); d != "" {
		return d
	}
	return strings.TrimSpace(input.Artifact)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("session-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("session-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the session backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.SessionBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.SessionBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SessionBackend]; !ok {
		return fmt.Errorf("invalid session backend '%s'. must be sqlite, mysql, postgresql, none", input.SessionBackend)
	}
	cfg.SessionDBConnect = input.SessionDBConnect
	return ValidateDatabaseConnectionString(cfg.SessionBackend, cfg.SessionDBConnect)
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	limit := input.Limit
	if limit == 0 {
		limit = DefaultResultLimit
	}
	if limit < 0 || limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = limit

	// --- 2. Output Validation ---
	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Width and Timeout Validation ---
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	cfg.HTTPTimeout = DefaultHTTPTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		if d <= 0 || d > MaxHTTPTimeout {
			return fmt.Errorf("timeout must be greater than 0 and cannot exceed %s (received %s)", MaxHTTPTimeout, d)
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

// Metric families accepted by ConfigRawInput.MetricFamily.
const (
	TimelineFamily = "timeline"
	HoursFamily    = "hours"
	TopFamily      = "top"
)

// processMetric validates --metric against the family of the running command.
// Every family starts from its default so unrelated commands are unaffected.
func processMetric(cfg *Config, input *ConfigRawInput) error {
	cfg.TimelineMetric = schema.MessagesTimeline
	cfg.HourMetric = schema.ResponseHours
	cfg.TopMetric = schema.EmojiTop

	metric := strings.ToLower(strings.TrimSpace(input.Metric))
	if metric == "" || input.MetricFamily == "" {
		return nil
	}
	switch input.MetricFamily {
	case TimelineFamily:
		cfg.TimelineMetric = schema.TimelineMetric(metric)
		if _, ok := schema.ValidTimelineMetrics[cfg.TimelineMetric]; !ok {
			return fmt.Errorf("invalid timeline metric '%s'. must be messages, emoji, chats", input.Metric)
		}
	case HoursFamily:
		cfg.HourMetric = schema.HourMetric(metric)
		if _, ok := schema.ValidHourMetrics[cfg.HourMetric]; !ok {
			return fmt.Errorf("invalid hours metric '%s'. must be response, messages, words", input.Metric)
		}
	case TopFamily:
		cfg.TopMetric = schema.TopMetric(metric)
		if _, ok := schema.ValidTopMetrics[cfg.TopMetric]; !ok {
			return fmt.Errorf("invalid top metric '%s'. must be emoji, chats", input.Metric)
		}
	default:
		return fmt.Errorf("unknown metric family '%s'", input.MetricFamily)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
