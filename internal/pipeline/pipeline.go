// Package pipeline wires the evidence clients, caches and arbiter into the
// validation service the CLI commands drive.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mgirardot/bibliocheck/internal/arbiter"
	"github.com/mgirardot/bibliocheck/internal/babelio"
	"github.com/mgirardot/bibliocheck/internal/cache"
	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/search"
	"github.com/mgirardot/bibliocheck/internal/worker"
)

// Pipeline owns the wired validation stack for one process.
type Pipeline struct {
	arbiter    *arbiter.Arbiter
	extraction *cache.ExtractionCache
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline builds the full stack from configuration: fuzzy-search client,
// rate-limited reference client (optionally behind the layered response
// cache), the arbiter over both, and the episode-scoped extraction cache.
func NewPipeline(cfg *model.Config) *Pipeline {
	searcher := search.New(cfg)

	var verifier babelio.Verifier = babelio.New(cfg)
	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg), cfg.Cache.DiskTTL)
		verifier = babelio.NewCachedVerifier(verifier, store, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		arbiter:    arbiter.New(searcher, verifier),
		extraction: cache.NewExtractionCache(searcher, cfg.Cache.ExtractionTTL),
		renderer:   NewRenderer(),
		config:     cfg,
	}
}

// Validate runs one entry through the arbitration engine.
func (p *Pipeline) Validate(ctx context.Context, entry model.BibliographicEntry, episodeID string) model.ValidationVerdict {
	return p.arbiter.Validate(ctx, entry, episodeID)
}

// ValidateBatch validates entries concurrently.
func (p *Pipeline) ValidateBatch(ctx context.Context, entries []worker.BatchEntry) []*worker.ValidationResult {
	processor := worker.NewBatchProcessor(p, p.config.Concurrency.Workers)
	return processor.ProcessEntries(ctx, entries)
}

// ExtractedBooks returns the memoized extraction list for an episode.
func (p *Pipeline) ExtractedBooks(ctx context.Context, episodeID string) ([]model.ExtractedBook, error) {
	return p.extraction.Get(ctx, episodeID)
}

// InvalidateEpisode forces a refetch of one episode's extraction list.
func (p *Pipeline) InvalidateEpisode(episodeID string) {
	p.extraction.Invalidate(episodeID)
}

// InvalidateAll clears every memoized extraction list.
func (p *Pipeline) InvalidateAll() {
	p.extraction.InvalidateAll()
}

// Renderer exposes the verdict renderer.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bibliocheck-cache"
	}
	return filepath.Join(home, ".bibliocheck", "cache")
}
