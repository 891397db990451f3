package match

import (
	"sort"
)

// MinSuggestScore is the similarity a name needs to be suggested.
const MinSuggestScore = 0.6

// Candidate is a known name scored against a wanted one.
type Candidate struct {
	Name string
	// Score is the IdentSimilarity of Name and the wanted name (0-1).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores names against want. Returns candidates sorted by score
// (descending).
func Rank(want string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, Candidate{Name: name, Score: IdentSimilarity(want, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the name most similar to want, if it scores at least
// MinSuggestScore.
func Suggest(want string, names []string) (string, bool) {
	best := Rank(want, names).Above(MinSuggestScore).Top(1)
	if len(best) == 0 {
		return "", false
	}

	return best[0].Name, true
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Above returns the candidates scoring at least threshold.
func (c CandidateList) Above(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}
