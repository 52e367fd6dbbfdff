package search

import (
	"strings"
	"testing"
)

func TestAnalyzeQuery_Classification(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"What are the best electric cars", QueryTypeList},
		{"Tesla vs Rivian", QueryTypeComparison},
		{"how to install solar panels", QueryTypeHowTo},
		{"why is inflation rising", QueryTypeAnalysis},
		{"EU AI Act timeline", QueryTypeFactual},
		{"impact of remote work on productivity", QueryTypeAnalysis},
		{"types of renewable energy", QueryTypeList},
	}

	for _, tt := range tests {
		analysis := AnalyzeQuery(tt.query)
		if analysis.Type != tt.expected {
			t.Errorf("query %q: expected type %s, got %s", tt.query, tt.expected, analysis.Type)
		}
	}
}

func TestAnalyzeQuery_Entities(t *testing.T) {
	analysis := AnalyzeQuery("Compare Tesla and Rivian trucks")

	expected := []string{"Compare", "Tesla", "Rivian", "Trucks"}
	if len(analysis.Entities) != len(expected) {
		t.Fatalf("expected %d entities, got %d: %v", len(expected), len(analysis.Entities), analysis.Entities)
	}
	for i, e := range expected {
		if analysis.Entities[i] != e {
			t.Errorf("expected entity %q at index %d, got %q", e, i, analysis.Entities[i])
		}
	}
}

func TestAnalyzeQuery_EntitiesSkipSuffixesAndStopWords(t *testing.T) {
	analysis := AnalyzeQuery("finding the best streaming services")

	for _, e := range analysis.Entities {
		lower := strings.ToLower(e)
		if lower == "the" {
			t.Errorf("stop word leaked into entities: %v", analysis.Entities)
		}
		if strings.HasSuffix(lower, "ing") {
			t.Errorf("-ing word leaked into entities: %v", analysis.Entities)
		}
	}
}

func TestAnalyzeQuery_SubQuestions(t *testing.T) {
	analysis := AnalyzeQuery("find sustainable packaging suppliers")

	if analysis.Type != QueryTypeList {
		t.Fatalf("expected list type, got %s", analysis.Type)
	}
	if len(analysis.SubQuestions) != 4 {
		t.Fatalf("expected 4 sub-questions, got %d", len(analysis.SubQuestions))
	}

	first := analysis.SubQuestions[0]
	if !strings.HasPrefix(first, "What are the best ") {
		t.Errorf("unexpected first sub-question: %q", first)
	}
	if !strings.Contains(first, "sustainable") {
		t.Errorf("expected first entity woven into sub-question, got %q", first)
	}
}

func TestAnalyzeQuery_FactualSubQuestions(t *testing.T) {
	query := "EU AI Act timeline"
	analysis := AnalyzeQuery(query)

	if analysis.SubQuestions[0] != "What is EU AI Act timeline?" {
		t.Errorf("expected query echoed in factual sub-question, got %q", analysis.SubQuestions[0])
	}
}

func TestAnalyzeQuery_FollowUps(t *testing.T) {
	analysis := AnalyzeQuery("how to install solar panels")

	if len(analysis.FollowUps) != 4 {
		t.Fatalf("expected 4 follow-ups, got %d", len(analysis.FollowUps))
	}
	if !strings.Contains(analysis.FollowUps[0], "how to install solar panels") {
		t.Errorf("expected query woven into follow-up, got %q", analysis.FollowUps[0])
	}
}
