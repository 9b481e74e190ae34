package extract

import (
	"strings"
	"unicode"

	"github.com/mgirardot/bibliocheck/internal/classify"
	"github.com/mgirardot/bibliocheck/internal/model"
	"github.com/mgirardot/bibliocheck/internal/similarity"
)

// Weights for ranking title fragments: closeness to the claimed title
// dominates, the index's own score breaks the rest.
const (
	titleSimilarityWeight = 0.7
	titleIndexWeight      = 0.3
)

// BookCandidate is the single best (title, author) pair extracted from a
// ground-truth result, with the two underlying match scores.
type BookCandidate struct {
	Title       string
	Author      string
	TitleScore  int
	AuthorScore int
}

// Candidate extracts the best candidate from a ground-truth result for the
// given claimed title. The author side delegates to ReconstructAuthor; the
// title side ranks fragments by a weighted blend of string similarity to the
// claimed title and the fragment's own index score. Comparison is strict, so
// on an exact tie the earliest fragment wins.
func Candidate(gt *model.GroundTruthResult, originalTitle string) BookCandidate {
	cand := BookCandidate{
		Title:       originalTitle,
		Author:      ReconstructAuthor(gt.AuthorFragments),
		AuthorScore: classify.AuthorScore(gt.AuthorFragments),
	}

	best := -1.0
	for _, f := range gt.TitleFragments {
		text := stripLeadingMarkers(f.Text)
		combined := titleSimilarityWeight*similarity.Ratio(originalTitle, text) +
			titleIndexWeight*float64(f.Score)/100
		if combined > best {
			best = combined
			cand.Title = text
			cand.TitleScore = f.Score
		}
	}
	return cand
}

// stripLeadingMarkers removes decorative leading emoji/markers that the
// indexer prefixes onto some titles.
func stripLeadingMarkers(s string) string {
	trimmed := strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.TrimSpace(trimmed)
}
