// Package model defines shared data structures.
package model

import "time"

// MutationConfig holds the independent mutation switches for a run.
type MutationConfig struct {
	Capitalisation bool `toml:"capitalisation"`
	LeetSpeak      bool `toml:"leet-speak"`
	Concatenation  bool `toml:"concatenation"`
	Affixes        bool `toml:"affixes"`
	// SelfPairs includes word+word concatenations when Concatenation is on.
	SelfPairs bool `toml:"self-pairs"`
}

// Enabled returns display names of the enabled mutations in menu order.
func (c MutationConfig) Enabled() []string {
	var out []string
	if c.Capitalisation {
		out = append(out, "Capitalisation")
	}
	if c.LeetSpeak {
		out = append(out, "Leet Speak")
	}
	if c.Concatenation {
		out = append(out, "Concatenation")
	}
	if c.Affixes {
		out = append(out, "Suffixes")
	}
	return out
}

// Estimate is an upper-bound projection of a generation run.
type Estimate struct {
	SingleCount      uint64
	ConcatCount      uint64
	MaxCandidates    uint64
	AvgCandidateLen  float64
	MaxFileSizeBytes float64
	Preview          []string
	PreviewEntropy   float64
}

// GenerationResult summarizes a completed generation run.
type GenerationResult struct {
	RawCount    int64
	UniqueCount int64
	OutputPath  string
	Duration    time.Duration
}
