package naming

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

const (
	// DefaultMaxLength bounds normalized identifiers unless configured otherwise.
	DefaultMaxLength = 10
	// MinMaxLength is the smallest usable bound: one head character plus the hash.
	MinMaxLength = hashLen + 1

	// DigitPrefix is prepended to identifiers that would start with a digit.
	DigitPrefix = "f"

	hashLen = 4
)

// Normalizer converts raw labels into identifiers.
// The zero value uses DefaultMaxLength.
type Normalizer struct {
	// MaxLength is the maximum identifier length before hashing kicks in.
	MaxLength int
}

// Normalize converts a raw label using DefaultMaxLength.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// Normalize converts a raw label into an identifier.
// The pipeline:
// 1. Transliterate non-Latin runes.
// 2. Strip everything outside [A-Za-z0-9_-].
// 3. Split on separators and CamelCase boundaries.
// 4. camelCase the segments.
// 5. Prefix a leading digit.
// 6. Truncate with a content hash when over the length bound.
//
// Blank input yields "". The function never fails.
func (n Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	stripped := stripInvalid(Transliterate(raw))

	ident := joinCamel(tokenizeCamelCase(stripped))
	if ident == "" {
		return ""
	}

	if isDigit(rune(ident[0])) {
		ident = DigitPrefix + ident
	}

	return truncate(ident, n.maxLength())
}

func (n Normalizer) maxLength() int {
	switch {
	case n.MaxLength <= 0:
		return DefaultMaxLength
	case n.MaxLength < MinMaxLength:
		return MinMaxLength
	default:
		return n.MaxLength
	}
}

// truncate keeps the first max-4 bytes and appends a 4-hex-digit digest
// of the full identifier. Identifiers are ASCII by now, so byte slicing is safe.
func truncate(ident string, maxLen int) string {
	if len(ident) <= maxLen {
		return ident
	}

	return ident[:maxLen-hashLen] + ContentHash(ident)
}

// ContentHash returns the 4 lowercase hex digits used as a truncation suffix.
func ContentHash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:hashLen]
}

// joinCamel lowercases the first segment, title-cases the rest,
// and lowercases every segment's remainder.
func joinCamel(segments []string) string {
	var b strings.Builder

	for _, seg := range segments {
		if seg == "" {
			continue
		}

		lower := strings.ToLower(seg)
		if b.Len() == 0 {
			b.WriteString(lower)
			continue
		}

		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}

	return b.String()
}

// stripInvalid removes every rune outside [A-Za-z0-9_-].
func stripInvalid(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isLetter(r) || isDigit(r) || isSeparator(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens,
// also breaking on separators.
// Examples:
//   - "CUSTOMER_NAME" -> ["CUSTOMER", "NAME"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// "XMLParser" -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
