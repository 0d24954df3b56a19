package completion

import "github.com/xrash/smetrics"

// Suggest returns the candidate string most similar to name by
// Jaro-Winkler distance, for "did you mean" hints on an unresolved
// member or identifier. Returns "" if candidates is empty or nothing
// clears the minimum-similarity floor.
func Suggest(name string, candidates []string) string {
	const minSimilarity = 0.7

	best := ""
	bestScore := minSimilarity
	for _, c := range candidates {
		score := smetrics.JaroWinkler(name, c, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// SuggestMember is Suggest specialized over a Member slice's names.
func SuggestMember(name string, members []Member) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return Suggest(name, names)
}
