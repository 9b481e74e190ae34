package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgirardot/bibliocheck/internal/llm"
	"github.com/mgirardot/bibliocheck/internal/pipeline"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

var (
	extractProvider string
	extractModel    string
	extractEpisode  string
	extractValidate bool
	extractOutput   string
	extractFormat   string
	extractTimeout  time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <transcript-file>",
	Short: "Extract book triples from an episode transcript",
	Long: `Extract pulls candidate (author, title, publisher) triples from a raw
episode transcript via the configured LLM provider. Extracted triples are the
engine's input, never its evidence: with --validate each one is then run
through normal arbitration.

Example:
  bibliocheck extract transcript.txt --llm-provider openai
  bibliocheck extract transcript.txt --episode ep-2024-03-17 --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractProvider, "llm-provider", "openai", "LLM provider (openai)")
	extractCmd.Flags().StringVar(&extractModel, "llm-model", "", "LLM model name")
	extractCmd.Flags().StringVar(&extractEpisode, "episode", "", "episode id used when validating extracted triples")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "validate each extracted triple")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "write results to this file")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "output format (json, yaml)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 10*time.Minute, "overall timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	transcript, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	cfg := loadConfig()
	cfg.LLM.Provider = extractProvider
	if extractModel != "" {
		cfg.LLM.Model = extractModel
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured")
	}

	entries, err := provider.ExtractEntries(ctx, string(transcript))
	if err != nil {
		return fmt.Errorf("extract entries: %w", err)
	}
	fmt.Printf("Extracted %d book references\n", len(entries))

	if !extractValidate {
		for _, e := range entries {
			fmt.Printf("  %s — %s", e.Author, e.Title)
			if e.Publisher != "" {
				fmt.Printf(" (%s)", e.Publisher)
			}
			fmt.Println()
		}
		return nil
	}

	batch := make([]worker.BatchEntry, 0, len(entries))
	for _, e := range entries {
		batch = append(batch, worker.BatchEntry{Entry: e, EpisodeID: extractEpisode})
	}

	p := pipeline.NewPipeline(cfg)
	results := p.ValidateBatch(ctx, batch)
	p.Renderer().RenderSummary(os.Stdout, results)

	if extractOutput != "" {
		if err := p.Renderer().RenderFile(results, extractOutput, extractFormat); err != nil {
			return err
		}
		fmt.Printf("Wrote verdicts: %s\n", extractOutput)
	}
	return nil
}
