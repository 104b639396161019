// Package main provides the CLI entrypoint for wordsmith.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsmith/internal/config"
	"github.com/verte-zerg/wordsmith/internal/logger"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/session"
	"github.com/verte-zerg/wordsmith/internal/wordlist"
)

const defaultLogLevel = "info"

var (
	rootLogLevel string
	rootVerbose  bool
	sessionPath  string
	configPath   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordsmith",
		Short: "Password candidate wordlist generator",
		Long: `wordsmith expands a few seed words into a deduplicated list of password
candidates using capitalisation, leet speak, suffixes and concatenation,
and estimates the size of that list before producing it.`,
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupLogging,
	}

	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "shorthand for --log-level debug")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", config.DefaultSessionPath(), "session state file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file")

	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newSeedsCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newMutationsCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level := rootLogLevel
	if rootVerbose {
		level = "debug"
	}
	if !logger.SetLevel(level) {
		return fmt.Errorf("unknown --log-level %q", rootLogLevel)
	}
	return nil
}

func newLogger() *log.Logger {
	return logger.New("wordsmith")
}

func loadFileConfig() (config.FileConfig, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadSession() (*session.State, error) {
	st, err := session.Load(sessionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return st, nil
}

// sessionMutations returns the toggles saved in st, falling back to the
// config file and then the built-in defaults.
func sessionMutations(st *session.State) (model.MutationConfig, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return model.MutationConfig{}, err
	}
	base := fileCfg.Mutations.MutationConfig(config.DefaultMutations())
	return st.Overlay().MutationConfig(base), nil
}

func saveSession(st *session.State) error {
	if err := st.Save(sessionPath); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// resolveWords picks base words from --words, then --words-file, then the
// saved session's engine list.
func resolveWords(inline, file string, st *session.State) ([]string, error) {
	var words []string
	switch {
	case strings.TrimSpace(inline) != "":
		words = wordlist.ParseWords(inline)
	case file != "":
		loaded, err := wordlist.LoadWords(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load words from %s: %w", file, err)
		}
		words = loaded
	case st != nil:
		words = st.EngineWords
	}
	words = wordlist.Unique(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("no base words: pass --words or --words-file, or run `wordsmith seeds`")
	}
	return words, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
