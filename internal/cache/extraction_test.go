package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mgirardot/bibliocheck/internal/model"
)

type fakeLister struct {
	books map[string][]model.ExtractedBook
	err   error
	calls int
}

func (f *fakeLister) ExtractedBooks(_ context.Context, episodeID string) ([]model.ExtractedBook, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.books[episodeID], nil
}

func TestExtractionCache_FetchesOncePerEpisode(t *testing.T) {
	lister := &fakeLister{books: map[string][]model.ExtractedBook{
		"ep1": {{Author: "Albert Camus", Title: "La Peste"}},
	}}
	c := NewExtractionCache(lister, time.Minute)

	for i := 0; i < 3; i++ {
		books, err := c.Get(context.Background(), "ep1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(books) != 1 || books[0].Title != "La Peste" {
			t.Fatalf("books = %+v", books)
		}
	}
	if lister.calls != 1 {
		t.Errorf("lister.calls = %d, want 1", lister.calls)
	}

	// A different episode is a separate fetch.
	if _, err := c.Get(context.Background(), "ep2"); err != nil {
		t.Fatalf("Get ep2: %v", err)
	}
	if lister.calls != 2 {
		t.Errorf("lister.calls = %d, want 2", lister.calls)
	}
}

func TestExtractionCache_Invalidate(t *testing.T) {
	lister := &fakeLister{books: map[string][]model.ExtractedBook{"ep1": {}}}
	c := NewExtractionCache(lister, time.Minute)

	_, _ = c.Get(context.Background(), "ep1")
	c.Invalidate("ep1")
	_, _ = c.Get(context.Background(), "ep1")

	if lister.calls != 2 {
		t.Errorf("lister.calls = %d, want refetch after Invalidate", lister.calls)
	}
}

func TestExtractionCache_InvalidateAll(t *testing.T) {
	lister := &fakeLister{books: map[string][]model.ExtractedBook{"ep1": {}, "ep2": {}}}
	c := NewExtractionCache(lister, time.Minute)

	_, _ = c.Get(context.Background(), "ep1")
	_, _ = c.Get(context.Background(), "ep2")
	c.InvalidateAll()
	_, _ = c.Get(context.Background(), "ep1")
	_, _ = c.Get(context.Background(), "ep2")

	if lister.calls != 4 {
		t.Errorf("lister.calls = %d, want 4", lister.calls)
	}
}

func TestExtractionCache_ErrorsNotCached(t *testing.T) {
	lister := &fakeLister{err: errors.New("index down")}
	c := NewExtractionCache(lister, time.Minute)

	if _, err := c.Get(context.Background(), "ep1"); err == nil {
		t.Fatal("want error")
	}

	lister.err = nil
	lister.books = map[string][]model.ExtractedBook{"ep1": {}}
	if _, err := c.Get(context.Background(), "ep1"); err != nil {
		t.Fatalf("Get after recovery: %v", err)
	}
	if lister.calls != 2 {
		t.Errorf("lister.calls = %d, want the failed fetch retried", lister.calls)
	}
}
