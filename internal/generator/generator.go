// Package generator streams mutated password candidates to disk and
// deduplicates them into the final word list.
package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wordsmith/internal/dedup"
	"github.com/verte-zerg/wordsmith/internal/logger"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/mutate"
)

var (
	// ErrNoWords is returned when no base words are supplied.
	ErrNoWords = errors.New("no base words provided for generation")
	// ErrEmptyWord is returned when a base word is the empty string.
	ErrEmptyWord = errors.New("base words must not be empty")
	// ErrNoOutputPath is returned when the output path is not set.
	ErrNoOutputPath = errors.New("output filename not set")
)

// StreamError reports a failed dedup step. The raw candidate stream is left
// on disk at Path for manual recovery.
type StreamError struct {
	Path string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("post-processing failed (raw candidates kept at %s): %v", e.Path, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Generator produces candidate word lists from base words.
type Generator struct {
	leet    *mutate.Leet
	pools   *mutate.AffixPools
	deduper dedup.Deduper
	tempDir string
	log     *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLeetTable overrides the leet substitution table.
func WithLeetTable(table mutate.LeetTable) Option {
	return func(g *Generator) {
		g.leet = mutate.NewLeet(table)
	}
}

// WithAffixPools overrides the suffix pools.
func WithAffixPools(pools *mutate.AffixPools) Option {
	return func(g *Generator) {
		g.pools = pools
	}
}

// WithDeduper sets the dedup backend.
func WithDeduper(d dedup.Deduper) Option {
	return func(g *Generator) {
		g.deduper = d
	}
}

// WithTempDir sets the directory for the raw candidate stream.
func WithTempDir(dir string) Option {
	return func(g *Generator) {
		g.tempDir = dir
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New returns a Generator using the default leet table, affix pools for the
// current year and the sort dedup backend unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.leet == nil {
		g.leet = mutate.NewLeet(nil)
	}
	if g.pools == nil {
		g.pools = mutate.DefaultAffixPools()
	}
	if g.deduper == nil {
		g.deduper = &dedup.SortUniq{TempDir: g.tempDir}
	}
	if g.log == nil {
		g.log = logger.Discard()
	}
	return g
}

// Leet returns the leet enumerator in use.
func (g *Generator) Leet() *mutate.Leet {
	return g.leet
}

// Pools returns the affix pools in use.
func (g *Generator) Pools() *mutate.AffixPools {
	return g.pools
}

// Generate writes every candidate for words to a temporary stream,
// deduplicates it into outputPath and reports raw and unique counts.
func (g *Generator) Generate(ctx context.Context, words []string, cfg model.MutationConfig, outputPath string) (model.GenerationResult, error) {
	if err := validate(words, outputPath); err != nil {
		return model.GenerationResult{}, err
	}
	started := time.Now()
	g.log.Info("Starting wordlist generation", "words", len(words), "output", outputPath)

	tmpFile, err := os.CreateTemp(g.tempDir, "wordsmith-raw-*.txt")
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to create candidate stream in %q: %w", tempDirName(g.tempDir), err)
	}
	tmpPath := tmpFile.Name()
	keepStream := false
	defer func() {
		_ = tmpFile.Close()
		if keepStream {
			return
		}
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			g.log.Warn("Could not delete temporary file", "path", tmpPath, "err", err)
		}
	}()
	g.log.Debug("Streaming raw candidates", "path", tmpPath)

	raw, err := g.WriteCandidates(tmpFile, words, cfg)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to write candidate stream %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to close candidate stream %s: %w", tmpPath, err)
	}
	g.log.Info("Generated raw candidates", "count", humanize.Comma(raw))
	g.log.Info("Sorting and removing duplicates")

	if err := g.deduper.Dedup(ctx, tmpPath, outputPath); err != nil {
		keepStream = true
		return model.GenerationResult{RawCount: raw}, &StreamError{Path: tmpPath, Err: err}
	}

	unique, err := dedup.CountLines(outputPath)
	if err != nil {
		return model.GenerationResult{RawCount: raw, OutputPath: outputPath},
			fmt.Errorf("failed to count lines in %s: %w", outputPath, err)
	}
	res := model.GenerationResult{
		RawCount:    raw,
		UniqueCount: unique,
		OutputPath:  outputPath,
		Duration:    time.Since(started),
	}
	g.log.Info("Wordlist written", "unique", humanize.Comma(unique), "path", outputPath, "took", res.Duration.Round(time.Millisecond))
	return res, nil
}

// WriteCandidates writes all single-word candidates followed by all
// concatenation candidates to w, one per line, and returns how many lines
// were written. Duplicates are not removed.
func (g *Generator) WriteCandidates(w io.Writer, words []string, cfg model.MutationConfig) (int64, error) {
	bw := bufio.NewWriterSize(w, 256*1024)
	var count int64
	emit := func(s string) error {
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		count++
		return nil
	}
	write := func(form string) error {
		if cfg.Affixes {
			return g.pools.Each(form, emit)
		}
		return emit(form)
	}

	core := make(mutate.CoreMap, len(words))
	for _, word := range words {
		forms, ok := core[word]
		if !ok {
			forms = mutate.CoreVariations(word, cfg, g.leet)
			core[word] = forms
		}
		g.log.Debug("Processing single-word forms", "word", word, "core", len(forms))
		for _, form := range forms {
			if err := write(form); err != nil {
				return count, err
			}
		}
	}

	if cfg.Concatenation && len(words) > 1 {
		pairs := mutate.Pairs(len(words), cfg.SelfPairs)
		g.log.Info("Processing concatenations", "pairs", len(pairs))
		lastLeft := -1
		for _, p := range pairs {
			left, right := words[p.Left], words[p.Right]
			if p.Left != lastLeft {
				g.log.Debug("Concatenating", "first", left)
				lastLeft = p.Left
			}
			if err := mutate.Concat(core[left], core[right], write); err != nil {
				return count, err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return count, err
	}
	return count, nil
}

func validate(words []string, outputPath string) error {
	if len(words) == 0 {
		return ErrNoWords
	}
	for i, w := range words {
		if w == "" {
			return fmt.Errorf("%w (index %d)", ErrEmptyWord, i)
		}
	}
	if strings.TrimSpace(outputPath) == "" {
		return ErrNoOutputPath
	}
	return nil
}

func tempDirName(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	return dir
}
