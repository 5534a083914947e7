package puzzle

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a guess or answer for comparison: combining
// diacritics are stripped, the result is lowercased and surrounding
// whitespace is trimmed. "  Modrić " becomes "modric".
func Normalize(s string) string {
	// Chained transformers keep internal buffers, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Length returns the number of letters in s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Display returns the answer in the uppercase form revealed to players.
// Accents are kept.
func Display(answer string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(answer))
}
