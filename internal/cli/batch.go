package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgirardot/bibliocheck/internal/pipeline"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

var (
	batchConcurrency int
	batchOutput      string
	batchFormat      string
	batchTimeout     time.Duration
	batchNoCache     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Validate triples from a file in parallel",
	Long: `Batch validates many triples concurrently. The input file holds one
triple per line:

  author;title[;publisher[;episode]]

Blank lines and lines starting with # are skipped. Reference-service calls
stay rate-limited across all workers, so raising concurrency mostly overlaps
ground-truth lookups.

Example:
  bibliocheck batch triples.txt
  bibliocheck batch triples.txt --concurrency 8 --output verdicts.yaml --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write all verdicts to this file")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "output format (json, yaml)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the response cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if batchConcurrency > 0 {
		cfg.Concurrency.Workers = batchConcurrency
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	start := time.Now()
	results, err := processor.ProcessFile(ctx, path)
	if err != nil {
		return err
	}

	p.Renderer().RenderSummary(os.Stdout, results)
	if verbose {
		fmt.Fprintf(os.Stderr, "Validated %d entries in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	}

	if batchOutput != "" {
		if err := p.Renderer().RenderFile(results, batchOutput, batchFormat); err != nil {
			return err
		}
		fmt.Printf("Wrote verdicts: %s\n", batchOutput)
	}
	return nil
}
