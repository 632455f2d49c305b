package schema

import (
	"strings"
	"unicode"
)

// maxListedParticipants is how many participants are named before eliding the rest.
const maxListedParticipants = 3

// cleanParts trims punctuation from both ends of every name part and drops empties.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Samuel Huang" to "Samuel H".
// Phone numbers, e-mail handles and single-word names are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	trimmed = strings.Trim(trimmed, "()\"'`")

	cleaned := cleanParts(strings.Fields(trimmed))
	switch {
	case len(cleaned) >= 2:
		last := []rune(cleaned[len(cleaned)-1])
		return cleaned[0] + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmed
	}
}

// FormatParticipants renders up to three abbreviated names, eliding the rest with "...".
func FormatParticipants(names []string) string {
	if len(names) == 0 {
		return Placeholder
	}
	limit := min(len(names), maxListedParticipants)
	abbreviated := make([]string, 0, limit)
	for _, n := range names[:limit] {
		abbreviated = append(abbreviated, AbbreviateName(n))
	}
	out := strings.Join(abbreviated, ", ")
	if len(names) > maxListedParticipants {
		out += "..."
	}
	return out
}

// ChatKind returns the display label for a conversation's type.
func ChatKind(isGroup bool) string {
	if isGroup {
		return "Group Chat"
	}
	return "1-on-1"
}
