// Package llm extracts candidate bibliographic triples from episode
// transcripts. It feeds the validation engine but is never consulted by it:
// arbitration only ever sees the two evidence services.
package llm

import (
	"context"
	"fmt"

	"github.com/mgirardot/bibliocheck/internal/model"
)

// Provider is an LLM backend able to pull (author, title, publisher) triples
// out of free transcript text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractEntries extracts every book mention from the transcript
	ExtractEntries(ctx context.Context, transcript string) ([]model.BibliographicEntry, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the hosted API
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// ConfigFromModel converts the application-level LLM section
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the extraction prompt. The transcript comes from a
// French book-review radio show; titles and author names must be returned
// exactly as spoken, without translation or normalization, so the validation
// engine sees the raw claim.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(`You extract book references from a French radio show transcript.

RULES:
1. Return ONLY a JSON array, no prose, no code fences.
2. Each element: {"author": "...", "title": "...", "publisher": "..."}.
3. Copy names and titles exactly as transcribed, including apparent errors.
   Do NOT correct spelling, accents, or word order.
4. Leave "publisher" empty when the transcript does not name one.
5. Skip mentions that are not books (films, plays, magazines).

TRANSCRIPT:
%s`, transcript)
}
