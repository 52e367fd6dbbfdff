package synth

import (
	"testing"

	"github.com/vportnov/indago/internal/model"
)

func TestUniqueCitations(t *testing.T) {
	tests := []struct {
		answer string
		want   []string
	}{
		{"The act passed [1][2], confirmed [1] and detailed [3].", []string{"1", "2", "3"}},
		{"[12] cites [2] then [12] again.", []string{"12", "2"}},
		{"No markers here.", nil},
	}
	for _, tt := range tests {
		got := uniqueCitations(tt.answer)
		if len(got) != len(tt.want) {
			t.Errorf("uniqueCitations(%q) = %v, expected %v", tt.answer, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("uniqueCitations(%q)[%d] = %q, expected %q", tt.answer, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAssessConfidence(t *testing.T) {
	s := newTestSynthesizer(&fakeLLM{})

	authDoc := func(domain, published string) model.Document {
		return model.Document{Domain: domain, Published: published}
	}
	fiveCitations := "A [1][2]. B [3]. C [4]. D [5]."
	fourCitations := "A [1][2]. B [3][4]."

	tests := []struct {
		name   string
		answer string
		docs   []model.Document
		want   string
	}{
		{
			name:   "authoritative recent and well cited",
			answer: fiveCitations,
			docs: []model.Document{
				authDoc("ec.europa.eu", "2026-02"),
				authDoc("agency.gov", "2025-11"),
				authDoc("law.university.edu", "2020-01"),
			},
			want: model.ConfidenceHigh,
		},
		{
			name:   "four citations miss high",
			answer: fourCitations,
			docs: []model.Document{
				authDoc("ec.europa.eu", "2026-02"),
				authDoc("agency.gov", "2025-11"),
				authDoc("law.university.edu", "2020-01"),
			},
			want: model.ConfidenceMedium,
		},
		{
			name:   "one recent source misses high",
			answer: fiveCitations,
			docs: []model.Document{
				authDoc("ec.europa.eu", "2026-02"),
				authDoc("agency.gov", "2019-05"),
				authDoc("law.university.edu", "2018-01"),
			},
			want: model.ConfidenceMedium,
		},
		{
			name:   "two authoritative sources miss high",
			answer: fiveCitations,
			docs: []model.Document{
				authDoc("ec.europa.eu", "2026-02"),
				authDoc("agency.gov", "2025-11"),
				authDoc("example.com", "2026-01"),
			},
			want: model.ConfidenceMedium,
		},
		{
			name:   "repeated markers count toward density",
			answer: "Claim [1][1][1].",
			docs:   []model.Document{authDoc("agency.gov", "2026-02")},
			want:   model.ConfidenceMedium,
		},
		{
			name:   "no authority",
			answer: fiveCitations,
			docs: []model.Document{
				authDoc("example.com", "2026-02"),
				authDoc("example.org", "2025-11"),
			},
			want: model.ConfidenceLow,
		},
		{
			name:   "too few citations",
			answer: "Claim [1] and [2].",
			docs:   []model.Document{authDoc("agency.gov", "2026-02")},
			want:   model.ConfidenceLow,
		},
		{
			name:   "no sources",
			answer: "An answer without any markers.",
			docs:   nil,
			want:   model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.assessConfidence(tt.answer, tt.docs); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAssessConfidenceEmptyDateNotRecent(t *testing.T) {
	s := newTestSynthesizer(&fakeLLM{})

	docs := []model.Document{
		{Domain: "agency.gov", Published: ""},
		{Domain: "ec.europa.eu", Published: ""},
		{Domain: "law.university.edu", Published: "2026-01"},
	}

	if got := s.assessConfidence("A [1][2]. B [3]. C [4]. D [5].", docs); got != model.ConfidenceMedium {
		t.Errorf("expected undated sources to miss the recency bar, got %q", got)
	}
}
