// Package mutate implements the per-word text mutations used to build
// password candidates.
package mutate

import (
	"strings"
	"unicode"
)

// Capitalize returns the lowercase, title case, uppercase and original forms
// of s with duplicates collapsed. Order is stable: lower, title, upper, original.
func Capitalize(s string) []string {
	return uniqueStrings([]string{
		strings.ToLower(s),
		Title(s),
		strings.ToUpper(s),
		s,
	})
}

// Title upper-cases the first letter of every run of letters and lower-cases
// the rest, so "hello world2go" becomes "Hello World2Go".
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			prevLetter = false
			b.WriteRune(r)
			continue
		}
		if prevLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = true
	}
	return b.String()
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
