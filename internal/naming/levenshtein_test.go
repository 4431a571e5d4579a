package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"custName", "custNme", 1},
		{"客户", "客人", 1},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1.0-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("客户", "客人"), 1e-9)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"amount", "custNme", "custNam", "zzzzzzzz", "custName"}

	got := Suggest("custName", candidates, 0.7, 2)

	// exact match is skipped; ties break alphabetically
	assert.Equal(t, []string{"custNam", "custNme"}, got)
	assert.Empty(t, Suggest("custName", []string{"zzzz"}, 0.7, 3))
}
