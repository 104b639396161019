// Package session persists the interactive workflow state between commands.
package session

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wordsmith/internal/config"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/wordlist"
)

// State is the saved workflow: seed words, brainstormed suggestions, the
// reviewed list handed to the generator and the run settings.
//
// Mutations and OutputPath stay unset (nil and empty) until the user saves
// them, so the config file keeps supplying those defaults.
type State struct {
	Seeds       []string              `toml:"seeds"`
	Suggestions []string              `toml:"suggestions"`
	EngineWords []string              `toml:"engine-words"`
	Mutations   *model.MutationConfig `toml:"mutations"`
	OutputPath  string                `toml:"output-path"`
	Model       string                `toml:"model"`
	Endpoint    string                `toml:"endpoint"`
	PromptPath  string                `toml:"prompt-path"`
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// SetMutations saves the mutation toggles.
func (s *State) SetMutations(cfg model.MutationConfig) {
	s.Mutations = &cfg
}

// Overlay returns the saved toggles as a config overlay. Every field is nil
// when no toggles were saved.
func (s *State) Overlay() config.MutationsConfig {
	if s.Mutations == nil {
		return config.MutationsConfig{}
	}
	m := *s.Mutations
	return config.MutationsConfig{
		Capitalisation: &m.Capitalisation,
		LeetSpeak:      &m.LeetSpeak,
		Concatenation:  &m.Concatenation,
		Affixes:        &m.Affixes,
		SelfPairs:      &m.SelfPairs,
	}
}

// Load reads the state at path. A missing file yields New().
func Load(path string) (*State, error) {
	st := New()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, fmt.Errorf("failed to stat session: %w", err)
	}
	if _, err := toml.DecodeFile(path, st); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return st, nil
}

// Save atomically writes the state to path.
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "session-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp session: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := toml.NewEncoder(writer).Encode(s); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush session: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// SetSeeds replaces the seed words with the comma-separated list in raw.
// Suggestions are cleared and the engine list resets to the new seeds.
// It reports false and leaves the state untouched when raw holds no words.
func (s *State) SetSeeds(raw string) bool {
	seeds := wordlist.ParseWords(raw)
	if len(seeds) == 0 {
		return false
	}
	s.Seeds = seeds
	s.Suggestions = nil
	s.EngineWords = append([]string(nil), seeds...)
	return true
}

// ApplySuggestions stores a merged seed+suggestion list and hands it to the
// engine for review.
func (s *State) ApplySuggestions(merged []string) {
	s.Suggestions = append([]string(nil), merged...)
	s.EngineWords = append([]string(nil), merged...)
}

// ReviewWords returns the engine words sorted and unique, the order the
// review screen numbers them in.
func (s *State) ReviewWords() []string {
	return wordlist.Sorted(s.EngineWords)
}

// SetEngineWords replaces the engine list with the sorted unique words.
func (s *State) SetEngineWords(words []string) {
	s.EngineWords = wordlist.Sorted(words)
}
