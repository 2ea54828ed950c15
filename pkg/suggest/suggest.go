// Package suggest finds the closest known name to a misspelled one.
package suggest

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// MaxDistance is the largest edit distance still offered as a suggestion.
const MaxDistance = 5

// Closest returns the candidate nearest to input by edit distance, or ""
// when nothing is within MaxDistance. Ties go to the alphabetically first
// candidate.
func Closest(input string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	minDist := -1
	closest := ""
	for _, c := range sorted {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > MaxDistance {
		return ""
	}
	return closest
}

// DidYouMean formats a suggestion for input, or returns "".
func DidYouMean(input string, candidates []string) string {
	if closest := Closest(input, candidates); closest != "" && closest != input {
		return " Did you mean \"" + closest + "\"?"
	}
	return ""
}
