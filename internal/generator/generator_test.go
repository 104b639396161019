package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordsmith/internal/dedup"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/mutate"
)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	tmp := t.TempDir()
	base := []Option{
		WithTempDir(tmp),
		WithDeduper(&dedup.SQLite{TempDir: tmp}),
		WithAffixPools(mutate.NewAffixPools(2026)),
	}
	return New(append(base, opts...)...)
}

func generateLines(t *testing.T, g *Generator, words []string, cfg model.MutationConfig) ([]string, model.GenerationResult) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "wordlist.txt")
	res, err := g.Generate(context.Background(), words, cfg, out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, res
	}
	return strings.Split(text, "\n"), res
}

func TestGenerateNoMutations(t *testing.T) {
	lines, res := generateLines(t, newTestGenerator(t), []string{"cat"}, model.MutationConfig{})
	assert.Equal(t, []string{"cat"}, lines)
	assert.EqualValues(t, 1, res.RawCount)
	assert.EqualValues(t, 1, res.UniqueCount)
}

func TestGenerateCapitalisation(t *testing.T) {
	lines, res := generateLines(t, newTestGenerator(t), []string{"cat", "dog"}, model.MutationConfig{Capitalisation: true})
	assert.Equal(t, []string{"CAT", "Cat", "DOG", "Dog", "cat", "dog"}, lines)
	assert.EqualValues(t, 6, res.UniqueCount)
}

func TestGenerateLeetRestrictedTable(t *testing.T) {
	g := newTestGenerator(t, WithLeetTable(mutate.LeetTable{'a': {'@', '4'}}))
	lines, _ := generateLines(t, g, []string{"ab"}, model.MutationConfig{LeetSpeak: true})
	assert.Equal(t, []string{"4b", "@b", "ab"}, lines)
}

func TestGenerateConcatenation(t *testing.T) {
	cfg := model.MutationConfig{Concatenation: true, SelfPairs: true}
	lines, res := generateLines(t, newTestGenerator(t), []string{"x", "y"}, cfg)
	assert.Equal(t, []string{"x", "xx", "xy", "y", "yx", "yy"}, lines)
	assert.EqualValues(t, 6, res.RawCount)

	cfg.SelfPairs = false
	lines, _ = generateLines(t, newTestGenerator(t), []string{"x", "y"}, cfg)
	assert.Equal(t, []string{"x", "xy", "y", "yx"}, lines)
}

func TestGenerateConcatenationNeedsTwoWords(t *testing.T) {
	cfg := model.MutationConfig{Concatenation: true, SelfPairs: true}
	lines, _ := generateLines(t, newTestGenerator(t), []string{"solo"}, cfg)
	assert.Equal(t, []string{"solo"}, lines)
}

func TestGenerateAffixes(t *testing.T) {
	g := newTestGenerator(t)
	lines, res := generateLines(t, g, []string{"password"}, model.MutationConfig{Affixes: true})
	assert.Len(t, lines, g.Pools().Size())
	assert.EqualValues(t, g.Pools().Size(), res.RawCount)
	assert.Contains(t, lines, "password")
	assert.Contains(t, lines, "password123!")
	assert.Contains(t, lines, "password_2001")
}

func TestWriteCandidatesPhaseOrder(t *testing.T) {
	g := newTestGenerator(t)
	var buf bytes.Buffer
	n, err := g.WriteCandidates(&buf, []string{"ab", "cd"}, model.MutationConfig{Concatenation: true})
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.Equal(t, "ab\ncd\nabcd\ncdab\n", buf.String())
}

func TestGenerateValidation(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "out.txt")

	_, err := g.Generate(ctx, nil, model.MutationConfig{}, out)
	assert.ErrorIs(t, err, ErrNoWords)

	_, err = g.Generate(ctx, []string{"a", ""}, model.MutationConfig{}, out)
	assert.ErrorIs(t, err, ErrEmptyWord)

	_, err = g.Generate(ctx, []string{"a"}, model.MutationConfig{}, "  ")
	assert.ErrorIs(t, err, ErrNoOutputPath)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no artifact on configuration errors")
}

type failingDeduper struct{}

func (failingDeduper) Dedup(context.Context, string, string) error {
	return &dedup.ToolError{Step: "sort -u", Stderr: "disk full", Err: errors.New("exit status 2")}
}

func TestGenerateKeepsStreamOnDedupFailure(t *testing.T) {
	tmp := t.TempDir()
	g := New(WithTempDir(tmp), WithDeduper(failingDeduper{}))
	out := filepath.Join(t.TempDir(), "out.txt")

	res, err := g.Generate(context.Background(), []string{"cat", "dog"}, model.MutationConfig{}, out)
	require.Error(t, err)
	assert.EqualValues(t, 2, res.RawCount)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	var toolErr *dedup.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Contains(t, err.Error(), "disk full")

	data, readErr := os.ReadFile(streamErr.Path)
	require.NoError(t, readErr)
	assert.Equal(t, "cat\ndog\n", string(data))
}

func TestGenerateRemovesStreamOnSuccess(t *testing.T) {
	tmp := t.TempDir()
	g := New(WithTempDir(tmp), WithDeduper(&dedup.SQLite{TempDir: t.TempDir()}))
	out := filepath.Join(t.TempDir(), "out.txt")

	_, err := g.Generate(context.Background(), []string{"cat"}, model.MutationConfig{}, out)
	require.NoError(t, err)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestWriteCandidatesPropagatesWriteErrors(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.WriteCandidates(failingWriter{}, []string{"cat"}, model.MutationConfig{Affixes: true})
	assert.ErrorContains(t, err, "no space left")
}
