package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions or substitutions turning one
// into the other.
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity is 1 - distance/max(len) over normalized names: 1.0 for names
// equal after Normalize, 0.0 for nothing in common.
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(utf8.RuneCountInString(a), utf8.RuneCountInString(b)))
}

// DefaultThreshold is the minimum similarity Closest accepts.
const DefaultThreshold = 0.5

// Closest returns the candidate most similar to name, preferring the earlier
// one on ties. It returns false when no candidate reaches threshold.
func Closest(name string, candidates []string, threshold float64) (string, bool) {
	best, bestScore := "", threshold

	found := false
	for _, c := range candidates {
		score := Similarity(name, c)
		if score > bestScore || (!found && score >= bestScore) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}

// Hint returns " (did you mean X?)" for the closest candidate, or "".
func Hint(name string, candidates []string) string {
	c, ok := Closest(name, candidates, DefaultThreshold)
	if !ok {
		return ""
	}

	return " (did you mean " + c + "?)"
}
