package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/wordsmith/internal/wordlist"
)

// ErrNoSeeds is returned when brainstorming is requested without seed words.
var ErrNoSeeds = errors.New("no seed words to expand")

// Suggester returns related words for a pair of prompts.
type Suggester interface {
	Suggest(ctx context.Context, system, user, model string) ([]string, error)
}

// UserPrompt builds the user message for a list of seed words.
func UserPrompt(seeds []string) string {
	return "Expand these seed words: " + strings.Join(seeds, ", ")
}

// Merge returns seeds followed by every suggestion not already present,
// preserving first-occurrence order.
func Merge(seeds, suggestions []string) []string {
	merged := make([]string, 0, len(seeds)+len(suggestions))
	merged = append(merged, seeds...)
	merged = append(merged, suggestions...)
	return wordlist.Unique(merged)
}

// Brainstorm reads the system prompt at promptPath, asks s for words related
// to seeds and returns the merged list. seeds is never modified.
func Brainstorm(ctx context.Context, s Suggester, promptPath, model string, seeds []string) ([]string, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	system, err := wordlist.ReadPromptFile(promptPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(system) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrEmptyPrompt, promptPath)
	}
	suggestions, err := s.Suggest(ctx, system, UserPrompt(seeds), model)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	return Merge(seeds, wordlist.Filter(suggestions, wordlist.IsCandidate)), nil
}
