package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mgirardot/bibliocheck/internal/model"
)

type fakeValidator struct {
	calls int64
}

func (f *fakeValidator) Validate(_ context.Context, entry model.BibliographicEntry, episodeID string) model.ValidationVerdict {
	atomic.AddInt64(&f.calls, 1)
	if entry.Author == "broken" {
		return model.ValidationVerdict{Status: model.VerdictError, Original: entry, Error: "boom"}
	}
	return model.ValidationVerdict{Status: model.VerdictVerified, Original: entry}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadEntriesFromFile(t *testing.T) {
	path := writeTempFile(t, `# validation batch
Albert Camus;La Peste

Jakuta Alikavazovic;Comme un ciel en nous;Gallimard;ep-2024-03-17
  Annie Ernaux ; Les Années ; Gallimard
`)

	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		t.Fatalf("ReadEntriesFromFile: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Entry.Author != "Albert Camus" || entries[0].Entry.Title != "La Peste" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[0].EpisodeID != "" || entries[0].Entry.Publisher != "" {
		t.Errorf("entries[0] optional fields = %+v", entries[0])
	}

	if entries[1].Entry.Publisher != "Gallimard" || entries[1].EpisodeID != "ep-2024-03-17" {
		t.Errorf("entries[1] = %+v", entries[1])
	}

	// Fields are trimmed.
	if entries[2].Entry.Author != "Annie Ernaux" || entries[2].Entry.Title != "Les Années" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestReadEntriesFromFile_MalformedLine(t *testing.T) {
	path := writeTempFile(t, "Albert Camus;La Peste\njust one field\n")

	_, err := ReadEntriesFromFile(path)
	if err == nil {
		t.Fatal("want error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line number", err)
	}
}

func TestReadEntriesFromFile_Missing(t *testing.T) {
	if _, err := ReadEntriesFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestProcessEntries(t *testing.T) {
	validator := &fakeValidator{}
	b := NewBatchProcessor(validator, 4)

	entries := []BatchEntry{
		{Entry: model.BibliographicEntry{Author: "Albert Camus", Title: "La Peste"}},
		{Entry: model.BibliographicEntry{Author: "broken", Title: "X"}},
		{Entry: model.BibliographicEntry{Author: "Annie Ernaux", Title: "Les Années"}},
	}
	results := b.ProcessEntries(context.Background(), entries)

	if len(results) != len(entries) {
		t.Fatalf("got %d results, want %d", len(results), len(entries))
	}
	if got := atomic.LoadInt64(&validator.calls); got != int64(len(entries)) {
		t.Errorf("validator called %d times, want %d", got, len(entries))
	}

	errored := 0
	for _, r := range results {
		if r.GetError() != nil {
			errored++
		}
	}
	if errored != 1 {
		t.Errorf("errored = %d, want the one error-status verdict surfaced", errored)
	}
}

func TestProcessEntries_LargerThanQueueCapacity(t *testing.T) {
	// Batches used to stall once the bounded job and result channels
	// (workers*2 each) filled up before draining began. Validate a batch
	// several times that size completes and loses nothing.
	validator := &fakeValidator{}
	b := NewBatchProcessor(validator, 2)

	entries := make([]BatchEntry, 30)
	for i := range entries {
		entries[i] = BatchEntry{Entry: model.BibliographicEntry{Author: "Albert Camus", Title: "La Peste"}}
	}
	results := b.ProcessEntries(context.Background(), entries)

	if len(results) != len(entries) {
		t.Fatalf("got %d results, want %d", len(results), len(entries))
	}
	if got := atomic.LoadInt64(&validator.calls); got != int64(len(entries)) {
		t.Errorf("validator called %d times, want %d", got, len(entries))
	}
}

func TestProcessEntries_Empty(t *testing.T) {
	b := NewBatchProcessor(&fakeValidator{}, 2)
	if results := b.ProcessEntries(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestProcessFile(t *testing.T) {
	path := writeTempFile(t, "Albert Camus;La Peste\nAnnie Ernaux;Les Années\n")
	b := NewBatchProcessor(&fakeValidator{}, 2)

	results, err := b.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
