package mutate

import (
	"strings"

	"github.com/verte-zerg/wordsmith/internal/model"
)

// CoreVariations returns the capitalization and leet forms of word. The
// original spelling and its lowercase form are always present. Leet is
// applied after capitalization, never before. A nil leet uses the default table.
func CoreVariations(word string, cfg model.MutationConfig, leet *Leet) []string {
	var forms []string
	if cfg.Capitalisation {
		forms = uniqueStrings(append([]string{strings.ToLower(word), word}, Capitalize(word)...))
	} else {
		forms = uniqueStrings([]string{strings.ToLower(word), word})
	}
	if !cfg.LeetSpeak {
		return forms
	}
	if leet == nil {
		leet = defaultLeet
	}

	seen := make(map[string]struct{}, len(forms))
	out := make([]string, 0, len(forms))
	for _, form := range forms {
		_ = leet.Each(form, func(v string) error {
			if _, ok := seen[v]; ok {
				return nil
			}
			seen[v] = struct{}{}
			out = append(out, v)
			return nil
		})
	}
	return out
}

// CoreMap maps each base word to its core variations.
type CoreMap map[string][]string

// BuildCoreMap computes core variations for every base word once.
func BuildCoreMap(words []string, cfg model.MutationConfig, leet *Leet) CoreMap {
	m := make(CoreMap, len(words))
	for _, w := range words {
		if _, ok := m[w]; ok {
			continue
		}
		m[w] = CoreVariations(w, cfg, leet)
	}
	return m
}
