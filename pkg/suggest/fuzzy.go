package suggest

import (
	"sort"
	"strings"

	"github.com/bastiangx/argcmd/internal/utils"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxEditDistance bounds how far a typo may be from a known name.
const MaxEditDistance = 2

type candidate struct {
	name  string
	score int
}

// DidYouMean returns up to limit known names close to input, best first.
//
// Names within MaxEditDistance edits come first, ordered by distance. Names
// that contain the input as a subsequence ("st" in "status") follow, ordered
// by how many characters they add. Inputs shorter than two characters get
// no suggestions.
func DidYouMean(input string, names []string, limit int) []string {
	if len(input) < 2 || len(names) == 0 {
		return nil
	}
	lowerInput := strings.ToLower(input)

	var near []candidate
	for _, name := range names {
		d := fuzzy.LevenshteinDistance(lowerInput, strings.ToLower(name))
		if d <= MaxEditDistance {
			near = append(near, candidate{name: name, score: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].score != near[j].score {
			return near[i].score < near[j].score
		}
		return near[i].name < near[j].name
	})

	ranks := fuzzy.RankFindFold(lowerInput, names)
	sort.Stable(ranks)

	filter := utils.NewSuggestionFilter(input)
	var out []string
	add := func(name string) bool {
		if filter.ShouldInclude(name) {
			out = append(out, name)
		}
		return limit > 0 && len(out) >= limit
	}
	for _, c := range near {
		if add(c.name) {
			return out
		}
	}
	for _, r := range ranks {
		if add(r.Target) {
			return out
		}
	}
	return out
}
