// Package slug derives URL-safe identifiers from display titles.
package slug

import "strings"

const maxLength = 80

// Make lowercases the title, drops everything but letters, digits, spaces
// and hyphens, then hyphenates and collapses runs.
func Make(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	hyphenated := strings.ReplaceAll(b.String(), " ", "-")
	for strings.Contains(hyphenated, "--") {
		hyphenated = strings.ReplaceAll(hyphenated, "--", "-")
	}

	if len(hyphenated) > maxLength {
		hyphenated = hyphenated[:maxLength]
	}

	return hyphenated
}
