// Package suggest serves command name completions out of a trie and offers close matches for mistyped names.
package suggest

// ICompleter defines the interface consumers use to ask for completions
type ICompleter interface {
	// Complete returns the candidates for prefix in trie order, at most limit of them (limit <= 0 means all)
	Complete(prefix string, limit int) []Suggestion

	// CompleteAt returns the candidate at a 0-indexed position, false once the index runs past the matches
	CompleteAt(prefix string, index int) (string, bool)

	// Stats returns statistics about the stored vocabulary
	Stats() map[string]int
}
