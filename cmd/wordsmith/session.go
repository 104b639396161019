package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsmith/internal/config"
	"github.com/verte-zerg/wordsmith/internal/model"
	"github.com/verte-zerg/wordsmith/internal/suggest"
	"github.com/verte-zerg/wordsmith/internal/tui"
	"github.com/verte-zerg/wordsmith/internal/wordlist"
)

const (
	apiKeyEnv         = "WORDSMITH_API_KEY"
	fallbackAPIKeyEnv = "AZURE_OPENAI_API_KEY"
)

var (
	suggestEndpoint   string
	suggestModel      string
	suggestPrompt     string
	suggestAPIVersion string

	checklistApply string
	reviewExport   string
)

func newSeedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seeds [word, word...]",
		Short: "Show or replace the seed words",
		Long: `Without arguments, prints the current seed words. With arguments, replaces
them with the comma-separated list, clearing suggestions and resetting the
engine words to the new seeds.`,
		RunE: runSeedsCmd,
	}
}

func runSeedsCmd(cmd *cobra.Command, args []string) error {
	st, err := loadSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		_, err := fmt.Fprintf(out, "Current: %s\n", strings.Join(st.Seeds, ", "))
		return err
	}
	if !st.SetSeeds(strings.Join(args, ",")) {
		_, err := fmt.Fprintln(out, "No changes made.")
		return err
	}
	if err := saveSession(st); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Seed words updated to: %s\n", strings.Join(st.Seeds, ", "))
	return err
}

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Brainstorm related words from the seed words",
		Long: fmt.Sprintf(`Sends the seed words to an Azure OpenAI deployment and merges the reply
into the engine word list. The API key is read from $%s (or $%s).`, apiKeyEnv, fallbackAPIKeyEnv),
		Args: cobra.NoArgs,
		RunE: runSuggestCmd,
	}
	cmd.Flags().StringVar(&suggestEndpoint, "endpoint", "", "Azure OpenAI endpoint URL")
	cmd.Flags().StringVar(&suggestModel, "model", "", "model deployment name")
	cmd.Flags().StringVar(&suggestPrompt, "prompt", config.DefaultPromptPath(), "system prompt .txt file")
	cmd.Flags().StringVar(&suggestAPIVersion, "api-version", suggest.DefaultAPIVersion, "Azure OpenAI API version")
	return cmd
}

func runSuggestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	st, err := loadSession()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "endpoint", &suggestEndpoint, fileCfg.Suggest.Endpoint)
	applyStringConfig(cmd, "model", &suggestModel, fileCfg.Suggest.Model)
	applyStringConfig(cmd, "prompt", &suggestPrompt, fileCfg.Suggest.SystemPrompt)
	applyStringConfig(cmd, "api-version", &suggestAPIVersion, fileCfg.Suggest.APIVersion)
	if st.Endpoint != "" {
		applyStringConfig(cmd, "endpoint", &suggestEndpoint, &st.Endpoint)
	}
	if st.Model != "" {
		applyStringConfig(cmd, "model", &suggestModel, &st.Model)
	}
	if st.PromptPath != "" {
		applyStringConfig(cmd, "prompt", &suggestPrompt, &st.PromptPath)
	}

	key := os.Getenv(apiKeyEnv)
	if key == "" {
		key = os.Getenv(fallbackAPIKeyEnv)
	}
	client, err := suggest.NewClient(suggestEndpoint, key, suggest.WithAPIVersion(suggestAPIVersion))
	if err != nil {
		return fmt.Errorf("failed to create suggestion client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger()
	log.Info("Sending request to model", "model", suggestModel)
	merged, err := suggest.Brainstorm(ctx, client, suggestPrompt, suggestModel, st.Seeds)
	if err != nil {
		return err
	}
	if len(merged) == len(st.Seeds) {
		log.Warn("Model returned no new suggestions")
	}

	st.ApplySuggestions(merged)
	st.Endpoint = suggestEndpoint
	st.Model = suggestModel
	st.PromptPath = suggestPrompt
	if err := saveSession(st); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Brainstorming complete. Found %d unique terms (including originals).\nRun `wordsmith review` to filter them.\n", len(merged))
	return err
}

func addChecklistFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&checklistApply, "apply", "", "apply toggles without the TUI (e.g. \"1 5 10-15\", all, none)")
}

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review and filter the words used by the engine",
		Args:  cobra.NoArgs,
		RunE:  runReviewCmd,
	}
	addChecklistFlags(cmd)
	cmd.Flags().StringVar(&reviewExport, "export", "", "also write the final engine words to this file")
	return cmd
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	st, err := loadSession()
	if err != nil {
		return err
	}
	words := st.ReviewWords()
	if len(words) == 0 {
		return fmt.Errorf("no words available to review; run `wordsmith seeds` or `wordsmith suggest` first")
	}
	list := tui.NewChecklist(fmt.Sprintf("Review & filter words for engine (%d total)", len(words)), words, true)
	ok, err := runChecklist(cmd, list)
	if err != nil || !ok {
		return err
	}
	st.SetEngineWords(list.Selected())
	if err := saveSession(st); err != nil {
		return err
	}
	if reviewExport != "" {
		if err := wordlist.WriteWords(reviewExport, st.EngineWords); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Final words for engine set to %d words.\n", len(st.EngineWords))
	return err
}

func newMutationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutations",
		Short: "Toggle the mutations saved in the session",
		Args:  cobra.NoArgs,
		RunE:  runMutationsCmd,
	}
	addChecklistFlags(cmd)
	return cmd
}

var mutationLabels = []string{"Capitalisation", "Leet Speak", "Concatenation", "Suffixes", "Self pairs"}

func mutationItems(cfg model.MutationConfig) []tui.Item {
	values := []bool{cfg.Capitalisation, cfg.LeetSpeak, cfg.Concatenation, cfg.Affixes, cfg.SelfPairs}
	items := make([]tui.Item, len(values))
	for i, v := range values {
		items[i] = tui.Item{Label: mutationLabels[i], Checked: v}
	}
	return items
}

func mutationConfigFromItems(items []tui.Item) model.MutationConfig {
	return model.MutationConfig{
		Capitalisation: items[0].Checked,
		LeetSpeak:      items[1].Checked,
		Concatenation:  items[2].Checked,
		Affixes:        items[3].Checked,
		SelfPairs:      items[4].Checked,
	}
}

func runMutationsCmd(cmd *cobra.Command, _ []string) error {
	st, err := loadSession()
	if err != nil {
		return err
	}
	current, err := sessionMutations(st)
	if err != nil {
		return err
	}
	list := tui.NewChecklistItems("Configure mutations", mutationItems(current))
	ok, err := runChecklist(cmd, list)
	if err != nil || !ok {
		return err
	}
	st.SetMutations(mutationConfigFromItems(list.Items()))
	if err := saveSession(st); err != nil {
		return err
	}
	enabled := st.Mutations.Enabled()
	if len(enabled) == 0 {
		enabled = []string{"none"}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Enabled mutations: %s\n", strings.Join(enabled, ", "))
	return err
}

// runChecklist applies --apply when given, otherwise runs the checklist TUI.
// It reports whether the selection was confirmed.
func runChecklist(cmd *cobra.Command, list *tui.Checklist) (bool, error) {
	if cmd.Flags().Changed("apply") {
		for _, command := range strings.Split(checklistApply, ",") {
			if _, err := list.Apply(command); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	program := tea.NewProgram(list, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return false, fmt.Errorf("failed to run TUI: %w", err)
	}
	if !list.Done() {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
		return false, err
	}
	return true, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	st, err := loadSession()
	if err != nil {
		return err
	}
	mutations, err := sessionMutations(st)
	if err != nil {
		return err
	}
	keySet := os.Getenv(apiKeyEnv) != "" || os.Getenv(fallbackAPIKeyEnv) != ""
	lines := []string{
		fmt.Sprintf("Endpoint Set:       %s", yesNo(st.Endpoint != "")),
		fmt.Sprintf("API Key Set:        %s", yesNo(keySet)),
		fmt.Sprintf("System Prompt File: %s", orNotSet(st.PromptPath)),
		fmt.Sprintf("Model:              %s", orNotSet(st.Model)),
		fmt.Sprintf("Seed Words:         %d (%s)", len(st.Seeds), previewWords(st.Seeds, 5)),
		fmt.Sprintf("Suggestions:        %d", len(st.Suggestions)),
		fmt.Sprintf("Words for Engine:   %d", len(st.EngineWords)),
		fmt.Sprintf("Mutations:          %s", orNotSet(strings.Join(mutations.Enabled(), ", "))),
		fmt.Sprintf("Output File:        %s", orNotSet(st.OutputPath)),
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return err
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orNotSet(s string) string {
	if s == "" {
		return "Not Set"
	}
	return s
}

func previewWords(words []string, limit int) string {
	if len(words) <= limit {
		return strings.Join(words, ", ")
	}
	return strings.Join(words[:limit], ", ") + "..."
}
