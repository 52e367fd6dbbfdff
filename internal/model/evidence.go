package model

// EvidenceEntry links one factual claim from the answer to the pull
// quote and source that back it.
type EvidenceEntry struct {
	Claim       string `json:"claim"`
	Quote       string `json:"supporting_quote"`
	SourceID    int    `json:"source_id"`
	SourceURL   string `json:"source_url"`
	SourceTitle string `json:"source_title"`
	SourceDate  string `json:"source_date"`
	Confidence  string `json:"confidence"` // high, medium, low
}

// Evidence confidence tiers.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Answer-level confidence adds two degenerate outcomes to the tiers
// above.
const (
	ConfidenceNone  = "none"  // no usable sources
	ConfidenceError = "error" // synthesis failed
)

// ValidationIssue is a diagnostic finding from answer validation.
// Issues are reported alongside the answer and never modify it.
type ValidationIssue struct {
	Claim    string `json:"claim"`
	Issue    string `json:"issue"`
	Severity string `json:"severity"` // high, medium, low
}

// Severity levels for validation issues.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)
