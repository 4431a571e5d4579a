package naming

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// row[i] holds the distance between ra[:i] and the prefix of rb seen so far.
	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j, cb := range rb {
		diag := row[0]
		row[0] = j + 1

		for i, ca := range ra {
			sub := diag
			if ca != cb {
				sub++
			}

			diag = row[i+1]
			row[i+1] = min(row[i+1]+1, row[i]+1, sub)
		}
	}

	return row[len(ra)]
}

// Similarity maps the edit distance onto [0, 1]; 1 means equal.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Suggest returns up to limit candidates whose similarity to target is at
// least threshold, best first. Ties break alphabetically.
func Suggest(target string, candidates []string, threshold float64, limit int) []string {
	type hit struct {
		name  string
		score float64
	}

	var hits []hit

	for _, c := range candidates {
		if c == target {
			continue
		}

		if s := Similarity(target, c); s >= threshold {
			hits = append(hits, hit{name: c, score: s})
		}
	}

	slices.SortFunc(hits, func(x, y hit) int {
		if c := cmp.Compare(y.score, x.score); c != 0 {
			return c
		}

		return cmp.Compare(x.name, y.name)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
