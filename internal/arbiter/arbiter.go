// Package arbiter decides, with no human in the loop, whether a raw
// (author, title, publisher) triple is correct, needs correcting, or cannot
// be trusted, by reconciling the episode-scoped fuzzy index with the external
// reference service.
package arbiter

import (
	"context"
	"fmt"
	"math"

	"github.com/mgirardot/bibliocheck/internal/classify"
	"github.com/mgirardot/bibliocheck/internal/model"
)

// GroundTruthSearcher is the episode-scoped fuzzy index collaborator.
type GroundTruthSearcher interface {
	Search(ctx context.Context, episodeID string, query model.BibliographicEntry) (*model.GroundTruthResult, error)
}

// ReferenceVerifier is the external bibliographic reference service.
type ReferenceVerifier interface {
	VerifyAuthor(ctx context.Context, name string) (*model.ReferenceVerification, error)
	VerifyBook(ctx context.Context, title, author string) (*model.ReferenceVerification, error)
}

// Confidence thresholds for accepting reference-service suggestions.
const (
	// strictSuggestionBar applies when the author side gave no signal at
	// all: a lone correction needs to be confident.
	strictSuggestionBar = 0.8

	// lowConfidenceBookCorrection marks a book correction too weak to trust
	// when ground truth ran and found nothing.
	lowConfidenceBookCorrection = 0.5

	// decentMatchConfidence is the fixed confidence attached to a
	// ground-truth candidate accepted without reference-service
	// confirmation.
	decentMatchConfidence = 0.75
)

// Arbiter sequences the evidence calls and emits one verdict per entry. It
// holds no mutable state: concurrent Validate calls are independent.
type Arbiter struct {
	searcher GroundTruthSearcher // may be nil when no index is deployed
	verifier ReferenceVerifier
}

// New creates an arbiter over the two evidence sources.
func New(searcher GroundTruthSearcher, verifier ReferenceVerifier) *Arbiter {
	return &Arbiter{searcher: searcher, verifier: verifier}
}

// evidence is the working state threaded through arbitration: the claim, the
// two evidence results, and the attempt trail for error reporting.
type evidence struct {
	entry            model.BibliographicEntry
	groundTruth      *model.GroundTruthResult
	author           *model.ReferenceVerification
	book             *model.ReferenceVerification
	authorSuggestion string // empty when the author side has no suggestion
	attempts         []string
}

// Validate is the engine's single entry point. Every code path yields exactly
// one verdict; collaborator failures during author or book verification
// become an error-status verdict, ground-truth failures are swallowed, and
// nothing propagates to the caller as a panic.
func (a *Arbiter) Validate(ctx context.Context, entry model.BibliographicEntry, episodeID string) (verdict model.ValidationVerdict) {
	var attempts []string
	defer func() {
		if r := recover(); r != nil {
			verdict = errorVerdict(entry, fmt.Errorf("arbitration panic: %v", r), attempts)
		}
	}()

	// Stage 1: ground-truth lookup, only when an episode scope was given.
	// Failures here degrade to "no ground truth".
	var gt *model.GroundTruthResult
	if episodeID != "" && a.searcher != nil {
		attempts = append(attempts, "ground_truth")
		if res, err := a.searcher.Search(ctx, episodeID, entry); err == nil {
			gt = res
		}
	}

	// Stage 2: author verification, always attempted. A nil response is
	// treated as not_found.
	attempts = append(attempts, "author_verification")
	author, err := a.verifier.VerifyAuthor(ctx, entry.Author)
	if err != nil {
		return errorVerdict(entry, err, attempts)
	}
	if author == nil {
		author = &model.ReferenceVerification{Status: model.VerificationNotFound, Original: entry.Author}
	}
	suggestion := authorSuggestion(author)

	// Stage 3: book verification with the original author; when the author
	// side carries a suggestion and the original came back empty, retry
	// once under the suggested author.
	attempts = append(attempts, "book_verification")
	book, err := a.verifier.VerifyBook(ctx, entry.Title, entry.Author)
	if err != nil {
		return errorVerdict(entry, err, attempts)
	}
	if book == nil {
		book = &model.ReferenceVerification{Status: model.VerificationNotFound, Original: entry.Title}
	}
	if suggestion != "" && book.Status == model.VerificationNotFound {
		attempts = append(attempts, "book_verification_retry")
		retry, err := a.verifier.VerifyBook(ctx, entry.Title, suggestion)
		if err != nil {
			return errorVerdict(entry, err, attempts)
		}
		if retry != nil {
			book = retry
		}
	}

	return a.arbitrate(ctx, &evidence{
		entry:            entry,
		groundTruth:      gt,
		author:           author,
		book:             book,
		authorSuggestion: suggestion,
		attempts:         attempts,
	})
}

// arbitrate evaluates the decision cases in strict priority order; the first
// match wins.
func (a *Arbiter) arbitrate(ctx context.Context, ev *evidence) model.ValidationVerdict {
	// (a)/(b): usable ground truth outranks everything the reference
	// service says on its own.
	switch classify.Quality(ev.groundTruth) {
	case classify.GoodMatch:
		return a.resolveGroundTruth(ctx, ev, true)
	case classify.DecentMatch:
		return a.resolveGroundTruth(ctx, ev, false)
	}

	// (c): direct validation. Both sides clean, nothing usable from
	// ground truth.
	if ev.authorSuggestion == "" &&
		ev.author.Status == model.VerificationVerified &&
		ev.book.Status == model.VerificationVerified {
		conf := math.Min(ev.author.Confidence, ev.book.Confidence)
		return model.ValidationVerdict{
			Status:     model.VerdictVerified,
			Original:   ev.entry,
			Source:     model.SourceBabelio,
			Confidence: &conf,
			Attempts:   ev.attempts,
		}
	}

	// (d): a reference-service suggestion exists on either side.
	bookCorrected := ev.book.Status == model.VerificationCorrected
	if ev.authorSuggestion != "" || bookCorrected {
		// A book-level correction is trusted liberally once the author
		// side gave any signal at all; author-only evidence faces a
		// strict bar.
		bar := strictSuggestionBar
		if bookCorrected && ev.author.Status != model.VerificationNotFound {
			bar = 0
		}
		if bestConfidence(ev) >= bar {
			return a.resolveSuggestion(ctx, ev)
		}
	}

	// (e): ground truth ran and found nothing while the book side offers
	// only a shaky correction: conflicting weak evidence.
	if ev.groundTruth != nil && !ev.groundTruth.Found &&
		bookCorrected && ev.book.Confidence < lowConfidenceBookCorrection {
		return notFoundVerdict(ev, model.ReasonConflictingLowConfidence)
	}

	// (f): terminal fallback.
	reason := model.ReasonNoReliableMatch
	if ev.author.Status == model.VerificationCorrected && ev.book.Status == model.VerificationNotFound {
		reason = model.ReasonSuggestionValidationFailed
	}
	return notFoundVerdict(ev, reason)
}

// authorSuggestion implements the "has a suggestion" predicate: a corrected
// status, or a verified status whose suggested text differs from the
// original. The comparison is a literal !=, so accent- or case-only
// differences count as corrections; tests pin that behavior.
func authorSuggestion(v *model.ReferenceVerification) string {
	switch v.Status {
	case model.VerificationCorrected:
		if v.SuggestedText != "" {
			return v.SuggestedText
		}
		if v.StructuredName != nil {
			return v.StructuredName.Full()
		}
	case model.VerificationVerified:
		if v.SuggestedText != "" && v.SuggestedText != v.Original {
			return v.SuggestedText
		}
	}
	return ""
}

// bestConfidence is the strongest confidence among the sides that actually
// carry a suggestion.
func bestConfidence(ev *evidence) float64 {
	best := 0.0
	if ev.authorSuggestion != "" && ev.author.Confidence > best {
		best = ev.author.Confidence
	}
	if ev.book.Status == model.VerificationCorrected && ev.book.Confidence > best {
		best = ev.book.Confidence
	}
	return best
}

func notFoundVerdict(ev *evidence, reason model.NotFoundReason) model.ValidationVerdict {
	return model.ValidationVerdict{
		Status:   model.VerdictNotFound,
		Original: ev.entry,
		Reason:   reason,
		Attempts: ev.attempts,
	}
}

func errorVerdict(entry model.BibliographicEntry, err error, attempts []string) model.ValidationVerdict {
	return model.ValidationVerdict{
		Status:   model.VerdictError,
		Original: entry,
		Error:    err.Error(),
		Attempts: attempts,
	}
}
