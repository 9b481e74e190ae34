package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mgirardot/bibliocheck/internal/model"
)

// Validator validates one bibliographic entry. Implemented by the pipeline;
// faked in tests.
type Validator interface {
	Validate(ctx context.Context, entry model.BibliographicEntry, episodeID string) model.ValidationVerdict
}

// BatchEntry is one line of a batch input: the triple plus its optional
// episode scope.
type BatchEntry struct {
	Entry     model.BibliographicEntry
	EpisodeID string
}

// ValidationJob validates one entry.
type ValidationJob struct {
	Input     BatchEntry
	Validator Validator
}

// Execute runs the validation.
func (j *ValidationJob) Execute(ctx context.Context) Result {
	return &ValidationResult{
		Input:   j.Input,
		Verdict: j.Validator.Validate(ctx, j.Input.Entry, j.Input.EpisodeID),
	}
}

// ValidationResult pairs an input with its verdict.
type ValidationResult struct {
	Input   BatchEntry              `json:"input" yaml:"input"`
	Verdict model.ValidationVerdict `json:"verdict" yaml:"verdict"`
}

// GetError surfaces an error-status verdict as a job error.
func (r *ValidationResult) GetError() error {
	if r.Verdict.Status == model.VerdictError {
		return errors.New(r.Verdict.Error)
	}
	return nil
}

// BatchProcessor validates many entries concurrently.
type BatchProcessor struct {
	validator   Validator
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(validator Validator, concurrency int) *BatchProcessor {
	return &BatchProcessor{validator: validator, concurrency: concurrency}
}

// ProcessEntries validates entries on the worker pool and returns one result
// per entry, in completion order.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []BatchEntry) []*ValidationResult {
	if len(entries) == 0 {
		return []*ValidationResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit from a separate goroutine: both pool channels are bounded, so
	// submitting everything before draining would stall once a batch exceeds
	// the queue capacity.
	go func() {
		for _, e := range entries {
			pool.Submit(&ValidationJob{Input: e, Validator: b.validator})
		}
		pool.Close()
	}()

	results := pool.Wait()
	out := make([]*ValidationResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*ValidationResult))
	}
	return out
}

// ProcessFile reads batch entries from a file and validates them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ValidationResult, error) {
	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return b.ProcessEntries(ctx, entries), nil
}

// ReadEntriesFromFile parses batch input lines of the form
//
//	author;title[;publisher[;episode]]
//
// Blank lines and #-comments are skipped.
func ReadEntriesFromFile(path string) ([]BatchEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []BatchEntry
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want author;title[;publisher[;episode]], got %q", lineNo, line)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		entry := BatchEntry{
			Entry: model.BibliographicEntry{
				Author: fields[0],
				Title:  fields[1],
			},
		}
		if len(fields) > 2 {
			entry.Entry.Publisher = fields[2]
		}
		if len(fields) > 3 {
			entry.EpisodeID = fields[3]
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return entries, nil
}
