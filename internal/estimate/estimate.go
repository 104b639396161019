// Package estimate projects the size of a generation run without producing
// any candidates.
package estimate

import (
	"math"
	"math/bits"
	"strings"

	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/mutate"
)

const (
	// MaxPreview bounds the number of preview samples.
	MaxPreview = 20
	// avgAffixLen approximates the characters a suffix chain adds.
	avgAffixLen = 3.0
)

// Estimator mirrors the generator's combinatorics analytically.
type Estimator struct {
	leet  *mutate.Leet
	pools *mutate.AffixPools
}

// New returns an Estimator. Nil arguments fall back to the default leet
// table and affix pools for the current year.
func New(leet *mutate.Leet, pools *mutate.AffixPools) *Estimator {
	if leet == nil {
		leet = mutate.NewLeet(nil)
	}
	if pools == nil {
		pools = mutate.DefaultAffixPools()
	}
	return &Estimator{leet: leet, pools: pools}
}

// CoreFactor bounds the number of core variations of word: the
// capitalization forms (3 when enabled, else 1, plus one when the original
// spelling is none of them) times the leet product of the form with the most
// substitutable positions.
func (e *Estimator) CoreFactor(word string, cfg model.MutationConfig) uint64 {
	lower := strings.ToLower(word)
	forms := []string{lower}
	caps := uint64(1)
	if cfg.Capitalisation {
		caps = 3
		title, upper := mutate.Title(word), strings.ToUpper(word)
		forms = append(forms, title, upper)
		if word != lower && word != title && word != upper {
			caps++
		}
	} else if word != lower {
		caps++
	}
	forms = append(forms, word)

	if !cfg.LeetSpeak {
		return caps
	}
	leet := 1
	for _, f := range forms {
		if c := e.leet.Count(f); c > leet {
			leet = c
		}
	}
	return mulSat(caps, uint64(leet))
}

// AffixFactor is the number of strings the affix mutator yields per input.
func (e *Estimator) AffixFactor(cfg model.MutationConfig) uint64 {
	if !cfg.Affixes {
		return 1
	}
	return uint64(e.pools.Size())
}

// Estimate computes the upper-bound candidate count and file size for words,
// plus a small preview and its character entropy. Counts are not
// deduplication-aware and saturate at math.MaxUint64.
func (e *Estimator) Estimate(words []string, cfg model.MutationConfig) model.Estimate {
	if len(words) == 0 {
		return model.Estimate{}
	}
	affix := e.AffixFactor(cfg)
	cores := make([]uint64, len(words))
	var single uint64
	for i, w := range words {
		cores[i] = e.CoreFactor(w, cfg)
		single = addSat(single, mulSat(cores[i], affix))
	}

	var concat uint64
	if cfg.Concatenation && len(words) > 1 {
		for _, p := range mutate.Pairs(len(words), cfg.SelfPairs) {
			concat = addSat(concat, mulSat(mulSat(cores[p.Left], cores[p.Right]), affix))
		}
	}
	total := addSat(single, concat)

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgLen := float64(totalLen) / float64(len(words))
	if cfg.Concatenation {
		avgLen *= 2
	}
	if cfg.Affixes {
		avgLen += avgAffixLen
	}

	preview := Preview(words, cfg, e.pools, MaxPreview)
	return model.Estimate{
		SingleCount:      single,
		ConcatCount:      concat,
		MaxCandidates:    total,
		AvgCandidateLen:  avgLen,
		MaxFileSizeBytes: float64(total) * (avgLen + 1),
		Preview:          preview,
		PreviewEntropy:   Entropy(preview),
	}
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
