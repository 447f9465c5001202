package utils

import (
	"strings"
)

// SuggestionFilter drops repeated names from a suggestion list. It is not
// safe for concurrent use.
type SuggestionFilter struct {
	seen map[string]bool
}

// NewSuggestionFilter creates a filter that already excludes input itself.
func NewSuggestionFilter(input string) *SuggestionFilter {
	return &SuggestionFilter{
		seen: map[string]bool{strings.ToLower(input): true},
	}
}

// ShouldInclude reports whether name is new, case-insensitively, and records it.
func (f *SuggestionFilter) ShouldInclude(name string) bool {
	key := strings.ToLower(name)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}
