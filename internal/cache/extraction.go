package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mgirardot/bibliocheck/internal/model"
)

// BookLister fetches the extracted-book list for one episode. Implemented by
// the fuzzy-search client; faked in tests.
type BookLister interface {
	ExtractedBooks(ctx context.Context, episodeID string) ([]model.ExtractedBook, error)
}

// ExtractionCache memoizes the extracted-book list per episode for the
// lifetime of a validation batch. The list is fetched once per episode;
// callers invalidate explicitly after upstream data changes. It is an
// explicit object owned by the pipeline, never a package-level singleton.
type ExtractionCache struct {
	lister BookLister
	books  *gocache.Cache
}

// NewExtractionCache wraps a lister with per-episode memoization.
func NewExtractionCache(lister BookLister, ttl time.Duration) *ExtractionCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ExtractionCache{
		lister: lister,
		books:  gocache.New(ttl, 2*ttl),
	}
}

// Get returns the extracted books for an episode, fetching at most once per
// episode until invalidated or expired. Fetch errors are not cached.
func (c *ExtractionCache) Get(ctx context.Context, episodeID string) ([]model.ExtractedBook, error) {
	if val, found := c.books.Get(episodeID); found {
		if books, ok := val.([]model.ExtractedBook); ok {
			return books, nil
		}
	}

	books, err := c.lister.ExtractedBooks(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	c.books.SetDefault(episodeID, books)
	return books, nil
}

// Invalidate drops the cached list for one episode, forcing a refetch on the
// next Get.
func (c *ExtractionCache) Invalidate(episodeID string) {
	c.books.Delete(episodeID)
}

// InvalidateAll drops every cached episode list.
func (c *ExtractionCache) InvalidateAll() {
	c.books.Flush()
}
