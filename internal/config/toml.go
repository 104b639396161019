// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wordsmith/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Mutations MutationsConfig `toml:"mutations"`
	Output    OutputConfig    `toml:"output"`
	Suggest   SuggestConfig   `toml:"suggest"`
}

// MutationsConfig maps the default mutation toggles.
type MutationsConfig struct {
	Capitalisation *bool `toml:"capitalisation"`
	LeetSpeak      *bool `toml:"leet-speak"`
	Concatenation  *bool `toml:"concatenation"`
	Affixes        *bool `toml:"affixes"`
	SelfPairs      *bool `toml:"self-pairs"`
}

// OutputConfig maps generation output settings.
type OutputConfig struct {
	Path    *string `toml:"path"`
	Dedup   *string `toml:"dedup"`
	TempDir *string `toml:"temp-dir"`
}

// SuggestConfig maps the suggestion service settings. The API key is read
// from the environment only.
type SuggestConfig struct {
	Endpoint     *string `toml:"endpoint"`
	Model        *string `toml:"model"`
	SystemPrompt *string `toml:"system-prompt"`
	APIVersion   *string `toml:"api-version"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// MutationConfig overlays the configured toggles onto base.
func (c MutationsConfig) MutationConfig(base model.MutationConfig) model.MutationConfig {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.Capitalisation, c.Capitalisation)
	set(&base.LeetSpeak, c.LeetSpeak)
	set(&base.Concatenation, c.Concatenation)
	set(&base.Affixes, c.Affixes)
	set(&base.SelfPairs, c.SelfPairs)
	return base
}

// DefaultMutations is the mutation set used when nothing is configured.
func DefaultMutations() model.MutationConfig {
	return model.MutationConfig{
		Capitalisation: true,
		LeetSpeak:      true,
		Concatenation:  true,
		Affixes:        true,
		SelfPairs:      true,
	}
}

const template = `# wordsmith configuration

[mutations]
# capitalisation = true
# leet-speak = true
# concatenation = true
# affixes = true
# self-pairs = true

[output]
# path = "wordlist.txt"
# dedup = "sort"      # or "sqlite"
# temp-dir = "/tmp"

[suggest]
# endpoint = "https://example.openai.azure.com"
# model = "gpt-4o"
# system-prompt = "~/.config/wordsmith/prompt.txt"
# api-version = "2024-02-01"
`

// EnsureTemplate writes a commented config template at path unless a file
// already exists there.
func EnsureTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
