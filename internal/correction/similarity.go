package correction

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
)

// Similarity scores two strings in [0,1] as one minus the Levenshtein edit
// distance normalized by the longer string's rune length. Identical strings
// score 1.0; two empty strings are defined as identical.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := matchr.Levenshtein(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// FoldCase lowers text for case-insensitive comparison using full Unicode
// case folding. A Caser carries conversion state, so each call gets a fresh
// one rather than sharing a package-level instance across goroutines.
func FoldCase(text string) string {
	return cases.Fold().String(text)
}

// BestText picks the consensus string from a group of near-duplicate
// candidates: the one with the highest mean similarity to all the others.
// Ties keep the earliest candidate.
func BestText(candidates []string) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}
	best := candidates[0]
	bestScore := -1.0
	for i, a := range candidates {
		var sum float64
		for j, b := range candidates {
			if i == j {
				continue
			}
			sum += Similarity(a, b)
		}
		avg := sum / float64(len(candidates)-1)
		if avg > bestScore {
			bestScore = avg
			best = a
		}
	}
	return best
}
