package matching

// Step describes the result of a filtering pass.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// FilterByScore keeps matches scoring at least minScore, preserving order.
// A non-positive threshold keeps everything.
func FilterByScore(matches []Match, minScore float64) ([]Match, Step) {
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if minScore > 0 && m.RelevanceScore < minScore {
			continue
		}
		kept = append(kept, m)
	}
	return kept, Step{Initial: len(matches), Dropped: len(matches) - len(kept), Left: len(kept)}
}
