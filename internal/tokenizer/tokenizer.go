// Package tokenizer turns raw document text into tokens.
//
// Two rules live here and they intentionally differ:
//   - Normalize produces gap-analysis tokens: ASCII letters and digits only,
//     split on whitespace.
//   - Terms produces similarity terms: runs of Unicode letters, digits and
//     underscore with a minimum rune length, split on anything else.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinTermLength is the shortest term (in runes) the vectorizer keeps.
const DefaultMinTermLength = 2

// wordRunRegex matches maximal runs of word characters.
var wordRunRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize converts text into a slice of tokens.
// It drops every rune that is not an ASCII letter, ASCII digit or whitespace,
// lowercases the remainder and splits on runs of whitespace.
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r), isSeparatorControl(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields)) // Initialize as empty slice, not nil
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// isSeparatorControl reports the ASCII file, group, record and unit
// separators (U+001C..U+001F), which also split words.
func isSeparatorControl(r rune) bool {
	return r >= 0x1c && r <= 0x1f
}

// NormalizeToString returns the normalized tokens joined by single spaces.
func NormalizeToString(text string) string {
	return strings.Join(Normalize(text), " ")
}

// TokenSet reduces tokens to a set, also returning the unique tokens in first-seen order.
func TokenSet(tokens []string) (map[string]struct{}, []string) {
	set := make(map[string]struct{}, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, seen := set[token]; seen {
			continue
		}
		set[token] = struct{}{}
		order = append(order, token)
	}
	return set, order
}

// Terms lowercases text and returns every run of letters, digits and
// underscore that is at least minLen runes long. A minLen below 1 is treated as 1.
func Terms(text string, minLen int) []string {
	if minLen < 1 {
		minLen = 1
	}

	matches := wordRunRegex.FindAllString(strings.ToLower(text), -1)
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		if utf8.RuneCountInString(m) < minLen {
			continue
		}
		terms = append(terms, m)
	}
	return terms
}

// FoldDiacritics strips combining marks so that "résumé" becomes "resume".
// Text that cannot be transformed is returned unchanged.
func FoldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}
