package mutate

import (
	"math"
	"unicode"
)

// LeetTable maps a lowercase letter to its replacement characters.
// Lookups are case-insensitive.
type LeetTable map[rune][]rune

// DefaultLeetTable is the substitution table used unless overridden.
var DefaultLeetTable = LeetTable{
	'a': {'@', '4'},
	'e': {'3'},
	'i': {'1', '!'},
	'o': {'0'},
	's': {'$', '5'},
	't': {'7'},
}

// Leet enumerates leet-speak substitutions for a fixed table.
type Leet struct {
	table LeetTable
}

// NewLeet returns a Leet for the given table. A nil table uses DefaultLeetTable.
func NewLeet(table LeetTable) *Leet {
	if table == nil {
		table = DefaultLeetTable
	}
	normalized := make(LeetTable, len(table))
	for k, v := range table {
		key := unicode.ToLower(k)
		seen := map[rune]struct{}{}
		var reps []rune
		for _, r := range append(normalized[key], v...) {
			// Replacements must differ from every spelling of the key so each
			// choice vector yields a distinct string.
			if unicode.ToLower(r) == key {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			reps = append(reps, r)
		}
		if len(reps) > 0 {
			normalized[key] = reps
		}
	}
	return &Leet{table: normalized}
}

var defaultLeet = NewLeet(DefaultLeetTable)

// LeetVariants returns all substitutions of s under DefaultLeetTable.
func LeetVariants(s string) []string {
	return defaultLeet.Variants(s)
}

func (l *Leet) replacements(r rune) []rune {
	return l.table[unicode.ToLower(r)]
}

// Count returns the number of variants Variants would produce for s without
// building them. The result saturates at math.MaxInt.
func (l *Leet) Count(s string) int {
	total := 1
	for _, r := range s {
		reps := l.replacements(r)
		if len(reps) == 0 {
			continue
		}
		options := 1 + len(reps)
		if total > math.MaxInt/options {
			return math.MaxInt
		}
		total *= options
	}
	return total
}

// Variants returns every string obtained by choosing, at each substitutable
// position, either the original rune or one of its replacements. The
// unmodified input is always the first element.
func (l *Leet) Variants(s string) []string {
	out := make([]string, 0, l.Count(s))
	_ = l.Each(s, func(v string) error {
		out = append(out, v)
		return nil
	})
	return out
}

// Each streams the variants of s to fn in odometer order, stopping at the
// first error fn returns.
func (l *Leet) Each(s string, fn func(string) error) error {
	runes := []rune(s)

	// positions[k] is the index in runes of the k-th substitutable rune and
	// choices[k] its current option: 0 keeps the original, n>0 picks reps[n-1].
	var positions []int
	var options [][]rune
	for i, r := range runes {
		reps := l.replacements(r)
		if len(reps) == 0 {
			continue
		}
		positions = append(positions, i)
		options = append(options, append([]rune{r}, reps...))
	}
	if len(positions) == 0 {
		return fn(s)
	}

	choices := make([]int, len(positions))
	buf := make([]rune, len(runes))
	copy(buf, runes)
	for {
		for k, pos := range positions {
			buf[pos] = options[k][choices[k]]
		}
		if err := fn(string(buf)); err != nil {
			return err
		}

		k := len(choices) - 1
		for k >= 0 {
			choices[k]++
			if choices[k] < len(options[k]) {
				break
			}
			choices[k] = 0
			k--
		}
		if k < 0 {
			return nil
		}
	}
}
