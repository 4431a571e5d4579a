// Package naming turns raw row labels into bounded-length,
// identifier-safe names, and ranks near-miss names for suggestions.
//
// Key functions:
//   - Normalize: label -> camelCase identifier with a length bound
//   - Transliterate: non-Latin runes -> Latin phonetic segments
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names by similarity to a missing one
package naming
