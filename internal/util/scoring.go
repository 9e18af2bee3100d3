package util

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// MatchIndices returns the positions of candidates that fuzzy-match input,
// in their original order. An empty input matches everything.
func MatchIndices(input string, candidates []string) []int {
	if input == "" {
		out := make([]int, len(candidates))
		for i := range candidates {
			out[i] = i
		}
		return out
	}
	matches := fuzzy.Find(input, candidates)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	sort.Ints(out)
	return out
}

// BestMatches returns the top n candidates for input, best first.
func BestMatches(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}
