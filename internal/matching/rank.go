package matching

import "sort"

// Rank returns a copy of matches ordered by score, highest first. Equal
// scores keep their input order.
func Rank(matches []Match) []Match {
	ranked := make([]Match, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	return ranked
}
