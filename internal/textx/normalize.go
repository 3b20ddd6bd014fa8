// Package textx implements the Unicode-normalized matching used to filter
// recipe lists.
package textx

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// upper uses full case mapping, so e.g. ß becomes SS rather than staying as is.
var upper = cases.Upper(language.Und)

// stripMarks decomposes and drops the combining marks, leaving bare letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize uppercases s, strips diacritics, and collapses every run of
// characters that are not letters or decimal digits into a single space.
// Normalize is idempotent.
func Normalize(s string) string {
	s = upper.String(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// SmartContains reports whether every whitespace-separated word of needle
// occurs somewhere in haystack, in any order, ignoring case, diacritics,
// separators, and punctuation. An all-separator needle matches anything.
func SmartContains(haystack, needle string) bool {
	h := Normalize(haystack)
	for _, word := range strings.Fields(Normalize(needle)) {
		if !strings.Contains(h, word) {
			return false
		}
	}
	return true
}
