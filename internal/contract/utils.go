package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Response speed label constants.
const (
	InstantValue = "Instant" // Instant value
	QuickValue   = "Quick"   // Quick value
	SteadyValue  = "Steady"  // Steady value
	SlowValue    = "Slow"    // Slow value
)

// Color variables for console output.
var (
	InstantColor = color.New(color.FgGreen, color.Bold) // InstantColor marks replies under a minute.
	QuickColor   = color.New(color.FgCyan)              // QuickColor marks replies under fifteen minutes.
	SteadyColor  = color.New(color.FgYellow)            // SteadyColor marks replies under an hour.
	SlowColor    = color.New(color.FgRed)               // SlowColor marks replies of an hour or more.
	HeadingColor = color.New(color.FgMagenta, color.Bold)
)

// GetPlainLabel returns a plain text label describing how fast a median
// response time is. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(minutes float64) string {
	switch {
	case minutes < 1:
		return InstantValue
	case minutes < 15:
		return QuickValue
	case minutes < 60:
		return SteadyValue
	default:
		return SlowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(minutes float64) string {
	text := GetPlainLabel(minutes)

	switch text {
	case InstantValue:
		return InstantColor.Sprint(text)
	case QuickValue:
		return QuickColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	default: // "Slow"
		return SlowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSessionDBFilePath returns the path to the SQLite DB file for session storage.
func GetSessionDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wrapped_session.db"
	}
	return filepath.Join(homeDir, ".wrapped_session.db")
}

// TruncateName truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
