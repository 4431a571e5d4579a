package naming

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// Transliterate renders non-Latin runes in Latin script, one rune at a time.
// Han characters become pinyin syllables wrapped in '_' so each syllable is
// its own segment; accented Latin letters lose their marks; anything else
// is kept verbatim for the caller to filter.
func Transliterate(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}

		if unicode.Is(unicode.Han, r) {
			if syllables := pinyin.LazyPinyin(string(r), pinyinArgs); len(syllables) > 0 {
				b.WriteByte('_')
				b.WriteString(syllables[0])
				b.WriteByte('_')

				continue
			}
		}

		b.WriteString(stripMarks(r))
	}

	return b.String()
}

// stripMarks decomposes r and drops combining marks ("é" -> "e").
// Runes that do not decompose to ASCII come back unchanged.
func stripMarks(r rune) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, string(r))
	if err != nil {
		return string(r)
	}

	return out
}
