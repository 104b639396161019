package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordsmith/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Mutations.LeetSpeak)
	assert.Nil(t, cfg.Output.Path)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[mutations]
leet-speak = false
self-pairs = false

[output]
path = "out.txt"
dedup = "sqlite"

[suggest]
model = "gpt-4o"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Output.Path)
	assert.Equal(t, "out.txt", *cfg.Output.Path)
	assert.Equal(t, "sqlite", *cfg.Output.Dedup)
	assert.Equal(t, "gpt-4o", *cfg.Suggest.Model)
	assert.Nil(t, cfg.Suggest.Endpoint)

	got := cfg.Mutations.MutationConfig(DefaultMutations())
	assert.Equal(t, model.MutationConfig{
		Capitalisation: true,
		Concatenation:  true,
		Affixes:        true,
	}, got)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[mutations\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestEnsureTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordsmith", "config.toml")
	require.NoError(t, EnsureTemplate(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Mutations.Capitalisation)

	require.NoError(t, os.WriteFile(path, []byte("[output]\npath = \"x\"\n"), 0o644))
	require.NoError(t, EnsureTemplate(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[output]\npath = \"x\"\n", string(data))
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "wordsmith", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "wordsmith", "prompt.txt"), DefaultPromptPath())
	assert.Equal(t, filepath.Join("/data", "wordsmith", "session.toml"), DefaultSessionPath())
}
