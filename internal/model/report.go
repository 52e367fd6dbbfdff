package model

import "time"

// Report is the complete result of one research run.
type Report struct {
	Query     string    `json:"query"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Answer          string `json:"answer"`
	Confidence      string `json:"confidence"`       // high, medium, low, none, error
	CitationsCount  int    `json:"citations_count"`  // unique [n] markers in the answer
	FactcheckStatus string `json:"factcheck_status"` // passed, revised, skipped

	Sources        []Source          `json:"sources"`
	EvidenceMatrix []EvidenceEntry   `json:"evidence_matrix"`
	Validation     []ValidationIssue `json:"validation,omitempty"`

	QueryType       string   `json:"query_type,omitempty"`
	SubQuestions    []string `json:"sub_questions,omitempty"`
	ExpandedQueries []string `json:"expanded_queries"`
	FollowUps       []string `json:"follow_ups,omitempty"` // suggested next queries when confidence is low

	Stats Stats `json:"processing_stats"`
}

// Fact-check outcomes. Skipped covers runs where no check could run:
// no sources, or synthesis itself failed.
const (
	FactcheckPassed  = "passed"
	FactcheckRevised = "revised"
	FactcheckSkipped = "skipped"
)

// Stats summarizes how the run went, for the report footer and logs.
type Stats struct {
	SourcesFound    int     `json:"sources_found"`    // search hits after dedupe and diversity prefilter
	SourcesUsed     int     `json:"sources_used"`     // documents handed to synthesis
	QueriesExpanded int     `json:"queries_expanded"` // expanded query variants issued
	ElapsedSeconds  float64 `json:"processing_time_seconds"`
}
