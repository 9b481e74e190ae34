package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

// Renderer writes verdicts to files and a human summary to a writer.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderFile writes results to path in the given format ("json" or "yaml").
func (r *Renderer) RenderFile(results []*worker.ValidationResult, path, format string) error {
	var data []byte
	var err error
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(results)
	case "json", "":
		data, err = json.MarshalIndent(results, "", "  ")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints one line per verdict plus totals.
func (r *Renderer) RenderSummary(w io.Writer, results []*worker.ValidationResult) {
	counts := map[model.VerdictStatus]int{}
	for _, res := range results {
		counts[res.Verdict.Status]++
		fmt.Fprintln(w, verdictLine(res))
	}

	fmt.Fprintf(w, "\n%d verified, %d suggestions, %d not found, %d errors\n",
		counts[model.VerdictVerified],
		counts[model.VerdictSuggestion],
		counts[model.VerdictNotFound],
		counts[model.VerdictError])
}

func verdictLine(res *worker.ValidationResult) string {
	entry := res.Input.Entry
	v := res.Verdict
	switch v.Status {
	case model.VerdictVerified:
		return fmt.Sprintf("✓ %s — %s [%s]", entry.Author, entry.Title, v.Source)
	case model.VerdictSuggestion:
		return fmt.Sprintf("≈ %s — %s → %s — %s [%s]",
			entry.Author, entry.Title, v.Suggested.Author, v.Suggested.Title, v.Source)
	case model.VerdictNotFound:
		return fmt.Sprintf("✗ %s — %s (%s)", entry.Author, entry.Title, v.Reason)
	default:
		return fmt.Sprintf("! %s — %s: %s", entry.Author, entry.Title, v.Error)
	}
}
