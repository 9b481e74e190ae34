package model

// VerdictStatus is the engine's final accept/correct/reject classification.
type VerdictStatus string

const (
	VerdictVerified   VerdictStatus = "verified"
	VerdictSuggestion VerdictStatus = "suggestion"
	VerdictNotFound   VerdictStatus = "not_found"
	VerdictError      VerdictStatus = "error"
)

// NotFoundReason explains a terminal not_found verdict. The set is closed:
// callers key retry/display behavior on these exact strings.
type NotFoundReason string

const (
	ReasonNoReliableMatch            NotFoundReason = "no_reliable_match_found"
	ReasonSuggestionValidationFailed NotFoundReason = "suggestion_validation_failed"
	ReasonGroundTruthNotConfirmed    NotFoundReason = "ground_truth_not_confirmed_by_babelio"
	ReasonConflictingLowConfidence   NotFoundReason = "conflicting_low_confidence_sources"
)

// Provenance tags for verdicts.
const (
	SourceBabelio              = "babelio"
	SourceGroundTruth          = "ground_truth"
	SourceGroundTruthConfirmed = "ground_truth_babelio_confirmed"
)

// SuggestedEntry is the corrected (author, title) pair carried by a
// suggestion verdict.
type SuggestedEntry struct {
	Author string `json:"author"`
	Title  string `json:"title"`
}

// Corrections flags which fields of the original entry the suggestion
// actually changes. Both may be false when ground truth round-trips to the
// original entry.
type Corrections struct {
	Author bool `json:"author"`
	Title  bool `json:"title"`
}

// ValidationVerdict is the engine's sole output type: every code path through
// arbitration produces exactly one.
type ValidationVerdict struct {
	Status      VerdictStatus      `json:"status"`
	Original    BibliographicEntry `json:"original"`
	Suggested   *SuggestedEntry    `json:"suggested,omitempty"`
	Corrections *Corrections       `json:"corrections,omitempty"`
	Source      string             `json:"source,omitempty"`
	Confidence  *float64           `json:"confidence_score,omitempty"`
	Reason      NotFoundReason     `json:"reason,omitempty"`
	Error       string             `json:"error,omitempty"`
	Attempts    []string           `json:"attempts,omitempty"`
}
