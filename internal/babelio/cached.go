package babelio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mgirardot/bibliocheck/internal/cache"
	"github.com/mgirardot/bibliocheck/internal/model"
)

// Verifier is the surface shared by Client and CachedVerifier.
type Verifier interface {
	VerifyAuthor(ctx context.Context, name string) (*model.ReferenceVerification, error)
	VerifyBook(ctx context.Context, title, author string) (*model.ReferenceVerification, error)
}

// CachedVerifier wraps a Verifier with a response cache. Verifications are
// deterministic for a given input over short horizons, and the service is
// rate-limited, so repeated batch runs should not re-pay the round-trip.
type CachedVerifier struct {
	inner Verifier
	store cache.Cache
	ttl   time.Duration
}

// NewCachedVerifier wraps inner with the given cache store.
func NewCachedVerifier(inner Verifier, store cache.Cache, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{inner: inner, store: store, ttl: ttl}
}

func (v *CachedVerifier) VerifyAuthor(ctx context.Context, name string) (*model.ReferenceVerification, error) {
	key := cache.Key("verify:author:" + name)
	return v.cached(ctx, key, func() (*model.ReferenceVerification, error) {
		return v.inner.VerifyAuthor(ctx, name)
	})
}

func (v *CachedVerifier) VerifyBook(ctx context.Context, title, author string) (*model.ReferenceVerification, error) {
	key := cache.Key("verify:book:" + title + "\x00" + author)
	return v.cached(ctx, key, func() (*model.ReferenceVerification, error) {
		return v.inner.VerifyBook(ctx, title, author)
	})
}

func (v *CachedVerifier) cached(_ context.Context, key string, fetch func() (*model.ReferenceVerification, error)) (*model.ReferenceVerification, error) {
	if data, found := v.store.Get(key); found {
		var rv model.ReferenceVerification
		if err := json.Unmarshal(data, &rv); err == nil {
			return &rv, nil
		}
		// Corrupt entry: drop it and refetch.
		_ = v.store.Delete(key)
	}

	rv, err := fetch()
	if err != nil || rv == nil {
		return rv, err
	}
	if data, err := json.Marshal(rv); err == nil {
		_ = v.store.Set(key, data, v.ttl)
	}
	return rv, nil
}
