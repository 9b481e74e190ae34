// Package extract turns raw fuzzy-index output into usable bibliographic
// candidates: it reassembles author names that were indexed in pieces and
// picks the best title fragment for an entry.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mgirardot/bibliocheck/internal/classify"
	"github.com/mgirardot/bibliocheck/internal/model"
)

// noiseWords are French stop-words that the OCR/transcription layer sometimes
// emits as standalone author fragments ("pour", "de la", ...). Compared
// case-insensitively against the whole fragment text.
var noiseWords = map[string]struct{}{
	"pour": {}, "de": {}, "du": {}, "la": {}, "le": {}, "et": {},
	"des": {}, "les": {}, "un": {}, "une": {}, "dans": {}, "avec": {},
	"sur": {}, "par": {},
}

// genericElision matches a leading "<word> de " prefix ("extrait de ",
// "roman de ", ...) left over from surrounding prose.
var genericElision = regexp.MustCompile(`^(?i)[\p{L}'-]+ de `)

const maxFirstNameLen = 20

// ReconstructAuthor rebuilds a plausible "First Last" author name from the
// scored fragments the fuzzy index returned for the author field.
//
// The heuristics run as an ordered pipeline: score filter, descending sort,
// noise-word removal, elision cleanup, first-name-shape classification,
// pairing. Each step is pure and separately testable.
func ReconstructAuthor(fragments []model.ScoredFragment) string {
	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0].Text
	}

	kept := qualifyingFragments(fragments)
	kept = dropNoiseWords(kept)

	switch len(kept) {
	case 0:
		// Everything got filtered: fall back to the single highest-scoring
		// original fragment.
		return bestFragment(fragments).Text
	case 1:
		return kept[0].Text
	default:
		return pairNames(kept[0].Text, kept[1].Text)
	}
}

// qualifyingFragments keeps fragments scoring at least the qualifying floor,
// sorted by descending score. The sort is stable so equal scores keep index
// order.
func qualifyingFragments(fragments []model.ScoredFragment) []model.ScoredFragment {
	kept := make([]model.ScoredFragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Score >= classify.QualifyingFragmentScore {
			kept = append(kept, f)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	return kept
}

func dropNoiseWords(fragments []model.ScoredFragment) []model.ScoredFragment {
	kept := fragments[:0:len(fragments)]
	for _, f := range fragments {
		if _, noise := noiseWords[strings.ToLower(strings.TrimSpace(f.Text))]; noise {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func bestFragment(fragments []model.ScoredFragment) model.ScoredFragment {
	best := fragments[0]
	for _, f := range fragments[1:] {
		if f.Score > best.Score {
			best = f
		}
	}
	return best
}

// cleanElisions strips leading French elision prefixes ("d'", "de ", "l'")
// and the generic "<word> de " pattern from a fragment.
func cleanElisions(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range []string{"d'", "l'"} {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(s[len(p):])
		}
	}
	if strings.HasPrefix(lower, "de ") {
		return strings.TrimSpace(s[3:])
	}
	if loc := genericElision.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return s
}

// isFirstNameLike reports whether a cleaned fragment has the shape of a bare
// first name: a single short word, capital letter followed by lowercase
// letters, apostrophes or hyphens only.
func isFirstNameLike(s string) bool {
	if s == "" || strings.ContainsRune(s, ' ') {
		return false
	}
	if utf8.RuneCountInString(s) >= maxFirstNameLen {
		return false
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

// pairNames joins the two strongest fragments into "First Last". When
// exactly one side looks like a first name it goes first; otherwise the
// shorter cleaned string wins the first-name slot (strictly shorter; on a
// length tie the higher-scored fragment keeps it).
func pairNames(a, b string) string {
	ca, cb := cleanElisions(a), cleanElisions(b)
	firstA, firstB := isFirstNameLike(ca), isFirstNameLike(cb)

	var first, last string
	switch {
	case firstA && !firstB:
		first, last = ca, cb
	case firstB && !firstA:
		first, last = cb, ca
	case ca != "" && cb != "":
		if utf8.RuneCountInString(cb) < utf8.RuneCountInString(ca) {
			first, last = cb, ca
		} else {
			first, last = ca, cb
		}
	case ca != "":
		return ca
	case cb != "":
		return cb
	default:
		return ""
	}

	if first == last {
		return first
	}
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
