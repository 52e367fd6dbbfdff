package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vportnov/indago/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Query:           "solar growth in europe",
		RunID:           "run-123",
		CreatedAt:       time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC),
		Answer:          "Solar output grew quickly [1].",
		Confidence:      model.ConfidenceMedium,
		CitationsCount:  1,
		FactcheckStatus: model.FactcheckPassed,
		Sources: []model.Source{{
			ID:     1,
			Title:  "Solar Report",
			URL:    "https://energy.example.org/solar",
			Domain: "energy.example.org",
			Date:   "2026-02",
			Quotes: []string{"Output grew by a third over the period."},
		}},
		EvidenceMatrix: []model.EvidenceEntry{{
			Claim:       "Solar output grew quickly .",
			Quote:       "Output grew by a third over the period.",
			SourceID:    1,
			SourceURL:   "https://energy.example.org/solar",
			SourceTitle: "Solar Report",
			SourceDate:  "2026-02",
			Confidence:  model.ConfidenceMedium,
		}},
		Validation: []model.ValidationIssue{{
			Claim:    "Overall answer reliability",
			Issue:    "High proportion of low-confidence evidence (1/1)",
			Severity: model.SeverityMedium,
		}},
		QueryType:       "analysis",
		ExpandedQueries: []string{"solar growth in europe", "solar growth in europe 2026"},
		FollowUps:       []string{"What are the future trends for solar growth in europe?"},
		Stats: model.Stats{
			SourcesFound:    9,
			SourcesUsed:     4,
			QueriesExpanded: 2,
			ElapsedSeconds:  8.4,
		},
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := NewRenderer(true).RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}

	if got.Query != "solar growth in europe" {
		t.Errorf("expected query preserved, got %q", got.Query)
	}
	if got.RunID != "run-123" {
		t.Errorf("expected run ID preserved, got %q", got.RunID)
	}
	if got.Stats.SourcesFound != 9 {
		t.Errorf("expected 9 sources found, got %d", got.Stats.SourcesFound)
	}
	if len(got.Sources) != 1 || got.Sources[0].ID != 1 {
		t.Errorf("expected one source with ID 1, got %+v", got.Sources)
	}
	if len(got.EvidenceMatrix) != 1 || got.EvidenceMatrix[0].SourceID != 1 {
		t.Errorf("expected one evidence entry for source 1, got %+v", got.EvidenceMatrix)
	}
}

func TestRenderJSONBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.json")

	if err := NewRenderer(true).RenderJSON(sampleReport(), path); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

func TestRenderMarkdownSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(true).RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Research Report",
		"**Query:** solar growth in europe",
		"**Date:** 2026-05-04 12:30 UTC",
		"## Answer",
		"Solar output grew quickly [1].",
		"[1] Solar Report",
		"> Output grew by a third over the period.",
		"## Evidence",
		"## Validation Issues",
		"High proportion of low-confidence evidence (1/1)",
		"## Suggested Follow-ups",
		"- Sources found: 9, used: 4",
		"- Run ID: run-123",
		reportFooter,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestRenderMarkdownWithoutFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	report := sampleReport()
	report.Validation = nil
	report.FollowUps = nil

	if err := NewRenderer(false).RenderMarkdown(report, path); err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)

	if strings.Contains(content, reportFooter) {
		t.Error("expected no footer")
	}
	if strings.Contains(content, "## Validation Issues") {
		t.Error("expected no validation section without issues")
	}
	if strings.Contains(content, "## Suggested Follow-ups") {
		t.Error("expected no follow-up section without suggestions")
	}
}
