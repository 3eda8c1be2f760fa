package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace and shortens upsert tails, whose
// column lists repeat the insert, so span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if head, tail, ok := strings.Cut(normalized, " DO UPDATE SET "); ok {
		normalized = head + " DO UPDATE"
		if _, returning, found := strings.Cut(tail, " RETURNING "); found {
			normalized += " RETURNING " + returning
		}
	}
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
