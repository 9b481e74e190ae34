// Package classify rates the usability of a ground-truth fuzzy-search result
// through fixed, empirically chosen thresholds.
package classify

import (
	"sort"

	"github.com/mgirardot/bibliocheck/internal/model"
)

// MatchQuality classifies how much trust arbitration can place in a
// ground-truth result.
type MatchQuality int

const (
	NoMatch MatchQuality = iota
	DecentMatch
	GoodMatch
)

func (q MatchQuality) String() string {
	switch q {
	case GoodMatch:
		return "good"
	case DecentMatch:
		return "decent"
	default:
		return "none"
	}
}

const (
	// QualifyingFragmentScore is the floor below which an author fragment is
	// ignored for scoring and reconstruction.
	QualifyingFragmentScore = 70

	goodTitleScore   = 80
	goodAuthorScore  = 80
	decentAuthor     = 75
	strongAuthor     = 85
	strictTitleFloor = 75
	relaxedTitleFloor = 35
)

// TitleScore is the best title fragment's index score, 0 if there are none.
func TitleScore(fragments []model.ScoredFragment) int {
	best := 0
	for _, f := range fragments {
		if f.Score > best {
			best = f.Score
		}
	}
	return best
}

// AuthorScore condenses the author fragments into one score. A single
// fragment scores itself. With several, only fragments at or above
// QualifyingFragmentScore count; when two or more qualify the score is the
// minimum of the best two, so both name parts must be decent, not just one.
func AuthorScore(fragments []model.ScoredFragment) int {
	switch len(fragments) {
	case 0:
		return 0
	case 1:
		return fragments[0].Score
	}

	qualified := make([]int, 0, len(fragments))
	for _, f := range fragments {
		if f.Score >= QualifyingFragmentScore {
			qualified = append(qualified, f.Score)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(qualified)))

	switch len(qualified) {
	case 0:
		return 0
	case 1:
		return qualified[0]
	default:
		return qualified[1] // min of the best two
	}
}

// Quality classifies a ground-truth result.
//
// A near-perfect author match licenses a much looser title floor: when the
// author score reaches strongAuthor the title floor drops from 75 to 35,
// which covers heavy title mis-transcription when the author is unambiguous.
func Quality(gt *model.GroundTruthResult) MatchQuality {
	if gt == nil || !gt.Found {
		return NoMatch
	}

	titleScore := TitleScore(gt.TitleFragments)
	authorScore := AuthorScore(gt.AuthorFragments)

	if titleScore >= goodTitleScore && authorScore >= goodAuthorScore {
		return GoodMatch
	}

	titleFloor := strictTitleFloor
	if authorScore >= strongAuthor {
		titleFloor = relaxedTitleFloor
	}
	if authorScore >= decentAuthor && titleScore >= titleFloor {
		return DecentMatch
	}

	return NoMatch
}
