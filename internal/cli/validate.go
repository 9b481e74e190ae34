package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/pipeline"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

var (
	valAuthor    string
	valTitle     string
	valPublisher string
	valEpisode   string
	valOutput    string
	valFormat    string
	valTimeout   time.Duration
	noCache      bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a single (author, title, publisher) triple",
	Long: `Validate arbitrates one bibliographic triple between the episode-scoped
fuzzy index and the reference service, and prints the verdict.

Without --episode the ground-truth lookup is skipped entirely and only the
reference service is consulted.

Example:
  bibliocheck validate --author "Albert Camus" --title "La Peste"
  bibliocheck validate --author "Jakuta Alikavazovic" --title "Comme un ciel en nous" --episode ep-2024-03-17
  bibliocheck validate --author "Houellebecq" --title "Anéantir" --output verdict.yaml --format yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&valAuthor, "author", "", "claimed author (required)")
	validateCmd.Flags().StringVar(&valTitle, "title", "", "claimed title (required)")
	validateCmd.Flags().StringVar(&valPublisher, "publisher", "", "claimed publisher")
	validateCmd.Flags().StringVar(&valEpisode, "episode", "", "episode id scoping the ground-truth lookup")
	validateCmd.Flags().StringVar(&valOutput, "output", "", "write the verdict to this file")
	validateCmd.Flags().StringVar(&valFormat, "format", "json", "output format (json, yaml)")
	validateCmd.Flags().DurationVar(&valTimeout, "timeout", 2*time.Minute, "overall validation timeout")
	validateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	_ = validateCmd.MarkFlagRequired("author")
	_ = validateCmd.MarkFlagRequired("title")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), valTimeout)
	defer cancel()

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}

	entry := model.BibliographicEntry{
		Author:    valAuthor,
		Title:     valTitle,
		Publisher: valPublisher,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating: %s — %s\n", entry.Author, entry.Title)
		if valEpisode != "" {
			fmt.Fprintf(os.Stderr, "Episode scope: %s\n", valEpisode)
		}
	}

	p := pipeline.NewPipeline(cfg)
	verdict := p.Validate(ctx, entry, valEpisode)

	result := &worker.ValidationResult{
		Input:   worker.BatchEntry{Entry: entry, EpisodeID: valEpisode},
		Verdict: verdict,
	}
	p.Renderer().RenderSummary(os.Stdout, []*worker.ValidationResult{result})

	if valOutput != "" {
		if err := p.Renderer().RenderFile([]*worker.ValidationResult{result}, valOutput, valFormat); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote verdict: %s\n", valOutput)
		}
	}

	if verdict.Status == model.VerdictError {
		return fmt.Errorf("validation failed: %s", verdict.Error)
	}
	return nil
}
