package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordsmith/internal/config"
	"github.com/verte-zerg/wordsmith/internal/model"
)

func TestLoadMissingReturnsEmpty(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)
	assert.Nil(t, st.Mutations)
	assert.Empty(t, st.OutputPath)
	assert.Empty(t, st.Seeds)
	assert.Equal(t, config.MutationsConfig{}, st.Overlay())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	st := New()
	require.True(t, st.SetSeeds("cat, dog"))
	st.ApplySuggestions([]string{"cat", "dog", "kitten"})
	st.SetMutations(model.MutationConfig{Capitalisation: true})
	st.Model = "gpt-4o"
	require.NoError(t, st.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestLoadLeavesAbsentSettingsUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("seeds = [\"a\"]\n"), 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, st.Seeds)
	assert.Nil(t, st.Mutations)
	assert.Empty(t, st.OutputPath)
}

func TestSeedsDoNotSaveMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	st := New()
	require.True(t, st.SetSeeds("cat"))
	require.NoError(t, st.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "[mutations]")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, got.Mutations)
}

func TestOverlay(t *testing.T) {
	st := New()
	st.SetMutations(model.MutationConfig{LeetSpeak: true})

	all := model.MutationConfig{Capitalisation: true, LeetSpeak: true, Concatenation: true, Affixes: true, SelfPairs: true}
	assert.Equal(t, model.MutationConfig{LeetSpeak: true}, st.Overlay().MutationConfig(all))
	assert.Equal(t, model.MutationConfig{LeetSpeak: true}, *st.Mutations)
}

func TestSetSeedsResetsDerivedLists(t *testing.T) {
	st := New()
	st.Suggestions = []string{"old"}
	st.EngineWords = []string{"old"}

	assert.False(t, st.SetSeeds(" , "))
	assert.Equal(t, []string{"old"}, st.EngineWords)

	require.True(t, st.SetSeeds("fox, ,owl"))
	assert.Equal(t, []string{"fox", "owl"}, st.Seeds)
	assert.Nil(t, st.Suggestions)
	assert.Equal(t, []string{"fox", "owl"}, st.EngineWords)

	st.EngineWords[0] = "changed"
	assert.Equal(t, "fox", st.Seeds[0])
}

func TestReviewWords(t *testing.T) {
	st := New()
	st.ApplySuggestions([]string{"owl", "fox", "owl", "Bee"})
	assert.Equal(t, []string{"Bee", "fox", "owl"}, st.ReviewWords())

	st.SetEngineWords([]string{"owl", "Bee", "owl"})
	assert.Equal(t, []string{"Bee", "owl"}, st.EngineWords)
}
