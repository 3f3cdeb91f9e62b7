package network

import (
	"strings"
)

// ParseQueries splits free-text input into individual query tokens. Lines are
// split on commas and whitespace, tokens are trimmed, and duplicates are
// dropped keeping the first occurrence.
func ParseQueries(text string) []string {
	raw := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line, ",", " ")
		for _, token := range strings.Fields(line) {
			raw = append(raw, token)
		}
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, token := range raw {
		if seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}
