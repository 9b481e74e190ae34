// Package search is the HTTP client for the episode-scoped fuzzy full-text
// index ("ground truth") and its extraction-list endpoint.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/util"
)

// Client queries one episode's fuzzy index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a fuzzy-search client from configuration.
func New(cfg *model.Config) *Client {
	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		baseURL:   cfg.Services.SearchBaseURL,
		userAgent: cfg.HTTP.UserAgent,
	}
}

type searchRequest struct {
	Author string `json:"author"`
	Title  string `json:"title"`
}

// Search runs an episode-scoped fuzzy search for the entry's author and
// title. A missing or empty index reports found=false with empty fragment
// lists; only transport and decoding problems surface as errors.
func (c *Client) Search(ctx context.Context, episodeID string, query model.BibliographicEntry) (*model.GroundTruthResult, error) {
	payload, err := json.Marshal(searchRequest{Author: query.Author, Title: query.Title})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/episodes/%s/search", c.baseURL, url.PathEscape(episodeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search episode %s: %w", episodeID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// An unindexed episode is an empty result, not a failure.
	if resp.StatusCode == http.StatusNotFound {
		return &model.GroundTruthResult{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search episode %s: unexpected status %d", episodeID, resp.StatusCode)
	}

	var result model.GroundTruthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &result, nil
}

// ExtractedBooks fetches the (author, title) pairs already extracted for an
// episode. Wrapped by cache.ExtractionCache in the pipeline.
func (c *Client) ExtractedBooks(ctx context.Context, episodeID string) ([]model.ExtractedBook, error) {
	endpoint := fmt.Sprintf("%s/episodes/%s/books", c.baseURL, url.PathEscape(episodeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create books request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list books for episode %s: %w", episodeID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return []model.ExtractedBook{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list books for episode %s: unexpected status %d", episodeID, resp.StatusCode)
	}

	var books []model.ExtractedBook
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode books response: %w", err)
	}
	return books, nil
}
