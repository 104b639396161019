package estimate

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/mutate"
)

var (
	previewLeetLower = strings.NewReplacer("e", "3", "a", "@", "s", "$", "o", "0")
	previewLeetUpper = strings.NewReplacer("S", "$", "E", "3")
	previewLeetA     = strings.NewReplacer("a", "@")
)

// Preview builds up to limit sample candidates by applying a few direct
// transformations per enabled mutation type. The result is sorted and
// deterministic for the same inputs.
func Preview(words []string, cfg model.MutationConfig, pools *mutate.AffixPools, limit int) []string {
	if len(words) == 0 || limit <= 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	add := func(s string) {
		if len(out) >= limit {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	first := words[0]
	second := first
	if len(words) > 1 {
		second = words[1]
	}
	for _, w := range words {
		add(w)
	}

	if cfg.Capitalisation {
		add(mutate.Title(first))
		add(strings.ToUpper(first))
		add(mutate.Title(second))
	}
	if cfg.LeetSpeak {
		add(previewLeetLower.Replace(strings.ToLower(first)))
		add(previewLeetLower.Replace(mutate.Title(second)))
	}
	if cfg.Affixes {
		add(first + "123")
		add(first + "!")
		if pools != nil && len(pools.Numeric) > 0 {
			add(mutate.Title(second) + pools.Numeric[0])
		}
	}
	if cfg.Concatenation && len(words) > 1 {
		add(first + second)
		add(second + first)
		add(mutate.Title(first) + mutate.Title(second))
	}
	if cfg.Capitalisation && cfg.LeetSpeak && cfg.Affixes && cfg.Concatenation && len(words) > 1 {
		add(previewLeetUpper.Replace(strings.ToUpper(second)) + previewLeetA.Replace(strings.ToLower(first)) + "!")
	}

	sort.Strings(out)
	return out
}

// Entropy returns the Shannon entropy in bits per character of the rune
// distribution across all samples.
func Entropy(samples []string) float64 {
	counts := map[rune]int{}
	total := 0
	for _, s := range samples {
		for _, r := range s {
			counts[r]++
			total++
		}
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
