// Package fuzzy picks the candidate whose name is closest to a spoken phrase.
package fuzzy

import "strings"

// Ratio returns the case-insensitive edit similarity of a and b in [0, 1]:
// one minus the edit distance over the longer length, counted in runes.
// Surrounding whitespace is ignored. Two empty strings are identical.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// BestMatch returns the candidate whose name scores highest against query.
// The first candidate wins ties. There is no minimum score: some candidate is
// always picked unless the list is empty.
func BestMatch[T any](query string, candidates []T, nameOf func(T) string) (T, bool) {
	var best T
	if len(candidates) == 0 {
		return best, false
	}
	bestScore := -1.0
	for _, c := range candidates {
		if score := Ratio(query, nameOf(c)); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, true
}

// editDistance counts the single-rune insertions, deletions and substitutions
// that turn a into b, keeping one row of the table.
func editDistance(a, b []rune) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i, ca := range a {
		diag := row[0]
		row[0] = i + 1
		for j, cb := range b {
			above := row[j+1]
			cost := 1
			if ca == cb {
				cost = 0
			}
			row[j+1] = min(above+1, row[j]+1, diag+cost)
			diag = above
		}
	}
	return row[len(b)]
}
