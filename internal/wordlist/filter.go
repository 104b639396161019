package wordlist

import "unicode"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Filter returns the words accepted by keep, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := words[:0:0]
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsCandidate reports whether word can be written as a single line of a
// candidate stream: non-empty, with no control characters.
func IsCandidate(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return false
		}
	}
	return true
}
