// Package babelio is the HTTP client for the external bibliographic
// reference service. Each verification is a discrete network round-trip; the
// client rate-limits itself but never retries; degraded results are the
// arbiter's problem, transport failures the caller's.
package babelio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/util"
)

// Client verifies authors and books against the reference service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// New creates a reference-service client from configuration. The rate
// limiter is shared across both verification kinds: the service throttles by
// origin, not by endpoint.
func New(cfg *model.Config) *Client {
	limit := cfg.Services.RateLimit
	if limit <= 0 {
		limit = 1
	}
	burst := cfg.Services.RateBurst
	if burst <= 0 {
		burst = 1
	}

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
		baseURL:   cfg.Services.BabelioBaseURL,
		userAgent: cfg.HTTP.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(limit), burst),
	}
}

type verifyRequest struct {
	Type   string `json:"type"` // "author" or "book"
	Name   string `json:"name,omitempty"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

type verifyResponse struct {
	Status          string                `json:"status"`
	Original        string                `json:"original"`
	SuggestedText   string                `json:"suggested_text"`
	SuggestedAuthor string                `json:"suggested_author"`
	StructuredName  *model.StructuredName `json:"structured_name"`
	Confidence      float64               `json:"confidence_score"`
}

// VerifyAuthor checks one author name against the reference service.
func (c *Client) VerifyAuthor(ctx context.Context, name string) (*model.ReferenceVerification, error) {
	return c.verify(ctx, verifyRequest{Type: "author", Name: name})
}

// VerifyBook checks one (title, author) pair against the reference service.
func (c *Client) VerifyBook(ctx context.Context, title, author string) (*model.ReferenceVerification, error) {
	return c.verify(ctx, verifyRequest{Type: "book", Title: title, Author: author})
}

func (c *Client) verify(ctx context.Context, reqBody verifyRequest) (*model.ReferenceVerification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", reqBody.Type, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("verify %s: unexpected status %d: %s", reqBody.Type, resp.StatusCode, bytes.TrimSpace(body))
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	return vr.toModel(), nil
}

// toModel maps the wire response onto the engine's verification record. The
// autocomplete payloads carry <b>-highlighted suggestion strings; those are
// flattened to plain text here so downstream string comparisons see what the
// user would.
func (vr *verifyResponse) toModel() *model.ReferenceVerification {
	status := model.VerificationStatus(vr.Status)
	switch status {
	case model.VerificationVerified, model.VerificationCorrected, model.VerificationNotFound:
	default:
		status = model.VerificationNotFound
	}

	return &model.ReferenceVerification{
		Status:          status,
		Original:        vr.Original,
		SuggestedText:   stripMarkup(vr.SuggestedText),
		SuggestedAuthor: stripMarkup(vr.SuggestedAuthor),
		StructuredName:  vr.StructuredName,
		Confidence:      vr.Confidence,
	}
}
