package model

// BibliographicEntry is the raw (author, title, publisher) triple extracted
// upstream from an episode transcription. It is the claim under test: the
// engine never mutates it, only copies it into verdicts.
type BibliographicEntry struct {
	Author    string `json:"author" yaml:"author"`
	Title     string `json:"title" yaml:"title"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// ScoredFragment is one text snippet returned by the fuzzy index for a single
// field, with its 0-100 match score. Author names often come back split into
// pieces (first and last name indexed as separate tokens).
type ScoredFragment struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// GroundTruthResult is the episode-scoped fuzzy search output for one query.
// Created per validation call, discarded after arbitration.
type GroundTruthResult struct {
	Found           bool             `json:"found"`
	TitleFragments  []ScoredFragment `json:"title_matches"`
	AuthorFragments []ScoredFragment `json:"author_matches"`
}

// ExtractedBook is one (author, title) pair already extracted for an episode,
// as returned by the extraction-list provider.
type ExtractedBook struct {
	Author string `json:"author"`
	Title  string `json:"title"`
}
