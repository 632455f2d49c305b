package outwriter

import (
	"os"

	"github.com/huangsam/wrapped/internal/contract"
	"golang.org/x/term"
)

// Name column bounds for table output.
const (
	minNameWidth = 12
	maxNameWidth = 48
)

// GetMaxTableNameWidth calculates the maximum width for a name column in table output
// based on terminal width and the width taken by the other columns.
func GetMaxTableNameWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 10
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}
