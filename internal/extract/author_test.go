package extract

import (
	"testing"

	"github.com/mgirardot/bibliocheck/internal/model"
)

func TestReconstructAuthor(t *testing.T) {
	tests := []struct {
		name      string
		fragments []model.ScoredFragment
		expected  string
	}{
		{
			name:      "no fragments",
			fragments: nil,
			expected:  "",
		},
		{
			name:      "single fragment returned verbatim even below the floor",
			fragments: []model.ScoredFragment{{Text: "Michel Houellebecq", Score: 50}},
			expected:  "Michel Houellebecq",
		},
		{
			name: "split name reassembled first name first",
			fragments: []model.ScoredFragment{
				{Text: "Alikavazovic", Score: 82},
				{Text: "Jakuta", Score: 78},
			},
			expected: "Jakuta Alikavazovic",
		},
		{
			name: "noise word dropped despite top score",
			fragments: []model.ScoredFragment{
				{Text: "pour", Score: 95},
				{Text: "Camus", Score: 90},
			},
			expected: "Camus",
		},
		{
			name: "low-scoring fragments ignored",
			fragments: []model.ScoredFragment{
				{Text: "Ernaux", Score: 88},
				{Text: "peut-être", Score: 45},
				{Text: "Annie", Score: 81},
			},
			expected: "Annie Ernaux",
		},
		{
			name: "all fragments filtered falls back to best original",
			fragments: []model.ScoredFragment{
				{Text: "quelque", Score: 40},
				{Text: "chose", Score: 60},
			},
			expected: "chose",
		},
		{
			name: "generic elision stripped before pairing",
			fragments: []model.ScoredFragment{
				{Text: "Marguerite", Score: 85},
				{Text: "roman de DURAS", Score: 80},
			},
			expected: "Marguerite DURAS",
		},
		{
			name: "apostrophe elision stripped",
			fragments: []model.ScoredFragment{
				{Text: "Olivier", Score: 90},
				{Text: "d'ADAM", Score: 85},
			},
			expected: "Olivier ADAM",
		},
		{
			name: "identical fragments collapse to one",
			fragments: []model.ScoredFragment{
				{Text: "Colette", Score: 90},
				{Text: "Colette", Score: 85},
			},
			expected: "Colette",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReconstructAuthor(tt.fragments); got != tt.expected {
				t.Errorf("ReconstructAuthor() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCleanElisions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"d'Ormesson", "Ormesson"},
		{"l'auteur", "auteur"},
		{"de Vigan", "Vigan"},
		{"extrait de Houellebecq", "Houellebecq"},
		{"Camus", "Camus"},
		{"  Camus  ", "Camus"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanElisions(tt.input); got != tt.expected {
			t.Errorf("cleanElisions(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsFirstNameLike(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Jakuta", true},
		{"Jean-Paul", true},
		{"Anaïs", true},
		{"jakuta", false},
		{"ALIKAVAZOVIC", false},
		{"Jean Paul", false},
		{"", false},
		{"Pneumonoultramicroscopique", false},
	}

	for _, tt := range tests {
		if got := isFirstNameLike(tt.input); got != tt.expected {
			t.Errorf("isFirstNameLike(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestPairNames(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected string
	}{
		{"first name goes first", "Alikavazovic", "Jakuta", "Jakuta Alikavazovic"},
		{"two first-name shapes pick the shorter", "Delphine", "Anna", "Anna Delphine"},
		{"length tie keeps the stronger fragment first", "Anna", "Marc", "Anna Marc"},
		{"empty side collapses", "Camus", "", "Camus"},
		{"equal sides collapse", "Colette", "Colette", "Colette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pairNames(tt.a, tt.b); got != tt.expected {
				t.Errorf("pairNames(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
