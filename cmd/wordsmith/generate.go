package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordsmith/internal/config"
	"github.com/verte-zerg/wordsmith/internal/dedup"
	"github.com/verte-zerg/wordsmith/internal/estimate"
	"github.com/verte-zerg/wordsmith/internal/generator"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/mutate"
	"github.com/verte-zerg/wordsmith/internal/session"
)

// runFlags are shared by estimate and generate.
type runFlags struct {
	words     string
	wordsFile string
	caps      bool
	leet      bool
	concat    bool
	affixes   bool
	selfPairs bool
	year      int

	output  string
	dedup   string
	tempDir string
	yes     bool
	raw     bool
}

var runOpts runFlags

func addMutationFlags(cmd *cobra.Command) {
	def := config.DefaultMutations()
	cmd.Flags().StringVar(&runOpts.words, "words", "", "comma-separated base words (default: session engine words)")
	cmd.Flags().StringVar(&runOpts.wordsFile, "words-file", "", "file with one base word per line")
	cmd.Flags().BoolVar(&runOpts.caps, "caps", def.Capitalisation, "capitalisation variants")
	cmd.Flags().BoolVar(&runOpts.leet, "leet", def.LeetSpeak, "leet speak substitutions")
	cmd.Flags().BoolVar(&runOpts.concat, "concat", def.Concatenation, "pairwise concatenation")
	cmd.Flags().BoolVar(&runOpts.affixes, "affixes", def.Affixes, "numeric and symbol suffixes")
	cmd.Flags().BoolVar(&runOpts.selfPairs, "self-pairs", def.SelfPairs, "include word+word concatenations")
	cmd.Flags().IntVar(&runOpts.year, "year", time.Now().Year(), "reference year for year suffixes")
}

func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate candidate count and file size",
		Args:  cobra.NoArgs,
		RunE:  runEstimateCmd,
	}
	addMutationFlags(cmd)
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the deduplicated wordlist",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addMutationFlags(cmd)
	cmd.Flags().StringVarP(&runOpts.output, "output", "o", config.DefaultOutputPath, "output wordlist path")
	cmd.Flags().StringVar(&runOpts.dedup, "dedup", dedup.BackendSort, "dedup backend (sort, sqlite)")
	cmd.Flags().StringVar(&runOpts.tempDir, "temp-dir", "", "directory for the raw candidate stream")
	cmd.Flags().BoolVarP(&runOpts.yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&runOpts.raw, "raw", false, "write raw candidates to stdout without deduplication")
	return cmd
}

// resolveRun merges defaults, the config file, the saved session and flags,
// in increasing order of precedence.
func resolveRun(cmd *cobra.Command) ([]string, model.MutationConfig, *session.State, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, model.MutationConfig{}, nil, err
	}
	st, err := loadSession()
	if err != nil {
		return nil, model.MutationConfig{}, nil, err
	}

	m := fileCfg.Mutations
	if st.Mutations != nil {
		m = st.Overlay()
	}
	applyBoolConfig(cmd, "caps", &runOpts.caps, m.Capitalisation)
	applyBoolConfig(cmd, "leet", &runOpts.leet, m.LeetSpeak)
	applyBoolConfig(cmd, "concat", &runOpts.concat, m.Concatenation)
	applyBoolConfig(cmd, "affixes", &runOpts.affixes, m.Affixes)
	applyBoolConfig(cmd, "self-pairs", &runOpts.selfPairs, m.SelfPairs)

	if cmd.Flags().Lookup("output") != nil {
		applyStringConfig(cmd, "output", &runOpts.output, fileCfg.Output.Path)
		if st.OutputPath != "" {
			applyStringConfig(cmd, "output", &runOpts.output, &st.OutputPath)
		}
		applyStringConfig(cmd, "dedup", &runOpts.dedup, fileCfg.Output.Dedup)
		applyStringConfig(cmd, "temp-dir", &runOpts.tempDir, fileCfg.Output.TempDir)
	}

	words, err := resolveWords(runOpts.words, runOpts.wordsFile, st)
	if err != nil {
		return nil, model.MutationConfig{}, nil, err
	}
	cfg := model.MutationConfig{
		Capitalisation: runOpts.caps,
		LeetSpeak:      runOpts.leet,
		Concatenation:  runOpts.concat,
		Affixes:        runOpts.affixes,
		SelfPairs:      runOpts.selfPairs,
	}
	return words, cfg, st, nil
}

func runEstimateCmd(cmd *cobra.Command, _ []string) error {
	words, cfg, _, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	est := estimate.New(nil, mutate.NewAffixPools(runOpts.year)).Estimate(words, cfg)
	return estimate.WriteReport(cmd.OutOrStdout(), words, cfg, est)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	words, cfg, _, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(runOpts.output) == "" {
		return generator.ErrNoOutputPath
	}
	pools := mutate.NewAffixPools(runOpts.year)
	out := cmd.OutOrStdout()
	log := newLogger()

	if runOpts.raw {
		gen := generator.New(generator.WithAffixPools(pools), generator.WithLogger(log))
		n, err := gen.WriteCandidates(out, words, cfg)
		if err != nil {
			return fmt.Errorf("failed to write candidates: %w", err)
		}
		log.Info("Wrote raw candidates", "count", humanize.Comma(n))
		return nil
	}

	deduper, err := dedup.New(runOpts.dedup, runOpts.tempDir)
	if err != nil {
		return err
	}

	est := estimate.New(nil, pools).Estimate(words, cfg)
	if err := estimate.WriteReport(out, words, cfg, est); err != nil {
		return err
	}
	if !runOpts.yes {
		ok, err := confirm(cmd.InOrStdin(), out, "\nProceed with generation? (yes/no): ")
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(out, "\nGeneration cancelled.")
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := generator.New(
		generator.WithAffixPools(pools),
		generator.WithDeduper(deduper),
		generator.WithTempDir(runOpts.tempDir),
		generator.WithLogger(log),
	)
	res, err := gen.Generate(ctx, words, cfg, runOpts.output)
	if err != nil {
		reportGenerateFailure(cmd.ErrOrStderr(), err)
		return err
	}
	_, err = fmt.Fprintf(out, "\nSuccessfully generated %s unique passwords (%s raw) in %s.\n",
		humanize.Comma(res.UniqueCount), humanize.Comma(res.RawCount), res.OutputPath)
	return err
}

// reportGenerateFailure prints recovery hints for a failed run.
func reportGenerateFailure(w io.Writer, err error) {
	if errors.Is(err, dedup.ErrToolMissing) {
		_, _ = fmt.Fprintln(w, "hint: install coreutils sort or pass --dedup sqlite")
	}
	var streamErr *generator.StreamError
	if errors.As(err, &streamErr) {
		_, _ = fmt.Fprintf(w, "raw candidates kept at %s\n", streamErr.Path)
	}
}

// confirm asks for an explicit "yes". A non-terminal stdin must pass --yes.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to generate without confirmation")
	}
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)) == "yes", nil
}
