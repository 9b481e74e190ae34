package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

func sampleResults() []*worker.ValidationResult {
	conf := 0.9
	return []*worker.ValidationResult{
		{
			Input: worker.BatchEntry{Entry: model.BibliographicEntry{Author: "Albert Camus", Title: "La Peste"}},
			Verdict: model.ValidationVerdict{
				Status:     model.VerdictVerified,
				Original:   model.BibliographicEntry{Author: "Albert Camus", Title: "La Peste"},
				Source:     model.SourceBabelio,
				Confidence: &conf,
			},
		},
		{
			Input: worker.BatchEntry{Entry: model.BibliographicEntry{Author: "Emanuelle Carère", Title: "Limonov"}},
			Verdict: model.ValidationVerdict{
				Status:    model.VerdictSuggestion,
				Original:  model.BibliographicEntry{Author: "Emanuelle Carère", Title: "Limonov"},
				Suggested: &model.SuggestedEntry{Author: "Emmanuel Carrère", Title: "Limonov"},
				Source:    model.SourceBabelio,
			},
		},
		{
			Input: worker.BatchEntry{Entry: model.BibliographicEntry{Author: "X", Title: "Y"}},
			Verdict: model.ValidationVerdict{
				Status:   model.VerdictNotFound,
				Original: model.BibliographicEntry{Author: "X", Title: "Y"},
				Reason:   model.ReasonNoReliableMatch,
			},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	var b strings.Builder
	NewRenderer().RenderSummary(&b, sampleResults())
	out := b.String()

	for _, want := range []string{
		"✓ Albert Camus",
		"≈ Emanuelle Carère",
		"Emmanuel Carrère",
		"✗ X",
		"no_reliable_match_found",
		"1 verified, 1 suggestions, 1 not found, 0 errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := NewRenderer().RenderFile(sampleResults(), path, "json"); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("got %d records, want 3", len(decoded))
	}
}

func TestRenderFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := NewRenderer().RenderFile(sampleResults(), path, "yaml"); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "status: verified") {
		t.Errorf("yaml output missing verdict status:\n%s", data)
	}
}

func TestRenderFile_UnknownFormat(t *testing.T) {
	err := NewRenderer().RenderFile(nil, filepath.Join(t.TempDir(), "out"), "xml")
	if err == nil {
		t.Fatal("want error for unknown format")
	}
}
