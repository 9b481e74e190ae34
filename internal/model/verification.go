package model

// VerificationStatus is the outcome reported by the reference service for a
// single author or book lookup.
type VerificationStatus string

const (
	VerificationVerified  VerificationStatus = "verified"
	VerificationCorrected VerificationStatus = "corrected"
	VerificationNotFound  VerificationStatus = "not_found"
)

// StructuredName is the reference service's structured form of an author name.
type StructuredName struct {
	FirstNames string `json:"first_names,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// Full joins the name parts into a displayable "First Last" string.
func (n StructuredName) Full() string {
	switch {
	case n.FirstNames == "":
		return n.LastName
	case n.LastName == "":
		return n.FirstNames
	default:
		return n.FirstNames + " " + n.LastName
	}
}

// ReferenceVerification is one author or book verification as produced by the
// reference service. The engine treats it as read-only evidence.
//
// For author checks, SuggestedText is the corrected author name. For book
// checks it is the corrected title, and SuggestedAuthor / StructuredName carry
// the author the service associated with that title, when it returned one.
type ReferenceVerification struct {
	Status          VerificationStatus `json:"status"`
	Original        string             `json:"original"`
	SuggestedText   string             `json:"suggested_text,omitempty"`
	SuggestedAuthor string             `json:"suggested_author,omitempty"`
	StructuredName  *StructuredName    `json:"structured_name,omitempty"`
	Confidence      float64            `json:"confidence_score"`
}
