package rank

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/model"
)

func testRankConfig(rerank bool) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Rank.LLMRerank = rerank
	return &cfg
}

func TestRankOrdersByScore(t *testing.T) {
	ranker := NewRanker(testRankConfig(false), nil, zap.NewNop())

	docs := []model.Document{
		{
			Title:     "Old blog take",
			URL:       "https://randomblog.io/post",
			Domain:    "randomblog.io",
			Text:      "Some thoughts about other things entirely.",
			WordCount: 80,
		},
		{
			Title:     "Emissions trading scheme report",
			URL:       "https://ec.europa.eu/report",
			Domain:    "ec.europa.eu",
			Text:      "The emissions trading scheme caps total emissions across the bloc.",
			WordCount: 1500,
		},
	}

	got := ranker.Rank(context.Background(), "emissions trading scheme", docs)

	if got[0].Domain != "ec.europa.eu" {
		t.Errorf("expected authoritative relevant document first, got %q", got[0].Domain)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("expected descending scores, got %v then %v", got[0].Score, got[1].Score)
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranker := NewRanker(testRankConfig(false), nil, zap.NewNop())

	if got := ranker.Rank(context.Background(), "query", nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d documents", len(got))
	}
}

func TestRankStableForTies(t *testing.T) {
	ranker := NewRanker(testRankConfig(false), nil, zap.NewNop())

	docs := []model.Document{
		{Title: "Same", URL: "https://a.example.com/1", Domain: "a.example.com", Text: "identical body", WordCount: 300},
		{Title: "Same", URL: "https://b.example.com/1", Domain: "b.example.com", Text: "identical body", WordCount: 300},
	}

	got := ranker.Rank(context.Background(), "unrelated query terms", docs)

	if got[0].URL != docs[0].URL || got[1].URL != docs[1].URL {
		t.Error("expected input order preserved for tied scores")
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	ranker := NewRanker(testRankConfig(false), nil, zap.NewNop())

	docs := []model.Document{
		{Title: "One", URL: "https://a.com/1", Domain: "a.com", Text: "text", WordCount: 300},
	}
	ranker.Rank(context.Background(), "query", docs)

	if docs[0].Score != 0 {
		t.Errorf("expected caller's slice untouched, got score %v", docs[0].Score)
	}
}

func TestRankRerankDisabledByFlag(t *testing.T) {
	provider := &fakeProvider{response: "1, 2"}
	ranker := NewRanker(testRankConfig(false), provider, zap.NewNop())

	ranker.Rank(context.Background(), "query", rankedDocs(12))

	if provider.calls != 0 {
		t.Errorf("expected no LLM calls with rerank disabled, got %d", provider.calls)
	}
}

func TestRankRerankEnabled(t *testing.T) {
	provider := &fakeProvider{response: "2, 1 - brief reasoning"}
	ranker := NewRanker(testRankConfig(true), provider, zap.NewNop())

	got := ranker.Rank(context.Background(), "query", rankedDocs(12))

	if provider.calls != 1 {
		t.Fatalf("expected one LLM call with rerank enabled, got %d", provider.calls)
	}
	if len(got) != 12 {
		t.Errorf("expected all documents back, got %d", len(got))
	}
}
