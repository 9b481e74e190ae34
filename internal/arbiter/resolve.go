package arbiter

import (
	"context"
	"strings"

	"github.com/mgirardot/bibliocheck/internal/extract"
	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/similarity"
)

// resolveGroundTruth handles arbitration cases (a) and (b): a good or decent
// ground-truth match.
//
// Both paths first try to reuse the book verification already in hand: when
// it names the candidate there is no point in another network call. A good
// match that cannot be reused is re-verified once against the lower-cased
// candidate title; if even that comes back empty the ground truth stands
// unconfirmed. A decent match never spends a second round-trip: it is
// accepted directly at a fixed moderate confidence.
func (a *Arbiter) resolveGroundTruth(ctx context.Context, ev *evidence, good bool) model.ValidationVerdict {
	cand := extract.Candidate(ev.groundTruth, ev.entry.Title)

	if matchesCandidate(ev.book, cand) {
		return groundTruthVerdict(ev, cand, ev.book, model.SourceGroundTruthConfirmed)
	}

	if good {
		ev.attempts = append(ev.attempts, "candidate_verification")
		conf, err := a.verifier.VerifyBook(ctx, strings.ToLower(cand.Title), cand.Author)
		if err != nil {
			return errorVerdict(ev.entry, err, ev.attempts)
		}
		if conf == nil || conf.Status == model.VerificationNotFound {
			return notFoundVerdict(ev, model.ReasonGroundTruthNotConfirmed)
		}
		return groundTruthVerdict(ev, cand, conf, model.SourceGroundTruthConfirmed)
	}

	// Decent match: accept the candidate as-is, preferring the reference
	// service's free-text author suggestion over the reconstructed one
	// when present.
	author := cand.Author
	if ev.authorSuggestion != "" {
		author = ev.authorSuggestion
	}
	confidence := decentMatchConfidence
	return suggestionVerdict(ev, author, cand.Title, model.SourceGroundTruth, confidence)
}

// groundTruthVerdict builds the final suggestion from a candidate and the
// reference verification that confirmed it. The verification's structured or
// free-text data wins over the reconstructed candidate fields when present.
func groundTruthVerdict(ev *evidence, cand extract.BookCandidate, conf *model.ReferenceVerification, source string) model.ValidationVerdict {
	title := cand.Title
	if conf.SuggestedText != "" {
		title = conf.SuggestedText
	}

	author := cand.Author
	if conf.StructuredName != nil && conf.StructuredName.Full() != "" {
		author = conf.StructuredName.Full()
	} else if conf.SuggestedAuthor != "" {
		author = conf.SuggestedAuthor
	}

	return suggestionVerdict(ev, author, title, source, conf.Confidence)
}

// resolveSuggestion handles arbitration case (d): turning the reference
// service's corrections into one coherent suggested pair.
func (a *Arbiter) resolveSuggestion(ctx context.Context, ev *evidence) model.ValidationVerdict {
	author := resolvedAuthor(ev)
	title := ev.entry.Title
	if ev.book.Status == model.VerificationCorrected && ev.book.SuggestedText != "" {
		title = ev.book.SuggestedText
	}

	confidence := ev.author.Confidence
	if ev.book.Status == model.VerificationCorrected {
		confidence = ev.book.Confidence
	}

	// Coherence check: an author-only suggestion must survive a book
	// lookup under the suggested author. A failure here degrades to
	// not_found, never to an error.
	if ev.book.Status != model.VerificationCorrected {
		ev.attempts = append(ev.attempts, "coherence_check")
		coh, err := a.verifier.VerifyBook(ctx, title, author)
		if err != nil || coh == nil || coh.Status == model.VerificationNotFound {
			return notFoundVerdict(ev, model.ReasonSuggestionValidationFailed)
		}
		if coh.Status == model.VerificationCorrected {
			// The coherence check's own correction wins over the
			// first-round author suggestion.
			if coh.StructuredName != nil && coh.StructuredName.Full() != "" {
				author = coh.StructuredName.Full()
			} else if coh.SuggestedAuthor != "" {
				author = coh.SuggestedAuthor
			}
			if coh.SuggestedText != "" {
				title = coh.SuggestedText
			}
			confidence = coh.Confidence
		}
	}

	return suggestionVerdict(ev, author, title, model.SourceBabelio, confidence)
}

// resolvedAuthor applies the author preference chain: structured name from
// the book verification, then from the author verification, then the
// free-text suggestion, then the original.
func resolvedAuthor(ev *evidence) string {
	if ev.book.StructuredName != nil && ev.book.StructuredName.Full() != "" {
		return ev.book.StructuredName.Full()
	}
	if ev.author.StructuredName != nil && ev.author.StructuredName.Full() != "" {
		return ev.author.StructuredName.Full()
	}
	if ev.authorSuggestion != "" {
		return ev.authorSuggestion
	}
	if ev.book.SuggestedAuthor != "" {
		return ev.book.SuggestedAuthor
	}
	return ev.entry.Author
}

// suggestionVerdict assembles a suggestion-status verdict with correction
// flags relative to the original entry.
func suggestionVerdict(ev *evidence, author, title, source string, confidence float64) model.ValidationVerdict {
	return model.ValidationVerdict{
		Status:   model.VerdictSuggestion,
		Original: ev.entry,
		Suggested: &model.SuggestedEntry{
			Author: author,
			Title:  title,
		},
		Corrections: &model.Corrections{
			Author: author != ev.entry.Author,
			Title:  title != ev.entry.Title,
		},
		Source:     source,
		Confidence: &confidence,
		Attempts:   ev.attempts,
	}
}

// matchesCandidate reports whether a book verification already names the
// ground-truth candidate, allowing the arbiter to reuse it instead of making
// a redundant network call. Titles must agree after normalization; when the
// verification carries author data, that must agree too.
func matchesCandidate(book *model.ReferenceVerification, cand extract.BookCandidate) bool {
	if book == nil || book.Status == model.VerificationNotFound {
		return false
	}

	bookTitle := book.Original
	if book.SuggestedText != "" {
		bookTitle = book.SuggestedText
	}
	if similarity.Normalize(bookTitle) != similarity.Normalize(cand.Title) {
		return false
	}

	bookAuthor := ""
	if book.StructuredName != nil {
		bookAuthor = book.StructuredName.Full()
	}
	if bookAuthor == "" {
		bookAuthor = book.SuggestedAuthor
	}
	if bookAuthor == "" {
		return true // no author data to disagree with
	}
	return similarity.Normalize(bookAuthor) == similarity.Normalize(cand.Author)
}
