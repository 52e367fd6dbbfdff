package rank

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/llm"
	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
)

// The refinement pass only pays off on larger pools, and summaries past
// twenty documents blow the prompt budget.
const (
	rerankMinDocs = 10
	rerankMaxDocs = 20
)

const rerankSystem = "You are an expert research assistant. Rank documents by their relevance to the query."

// Reranker asks the model to reorder the top candidates. It refines
// the heuristic ordering but never replaces it: any failure returns
// the input unchanged.
type Reranker struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewReranker creates an LLM reranker.
func NewReranker(provider llm.Provider, logger *zap.Logger) *Reranker {
	return &Reranker{provider: provider, logger: logger}
}

// Rerank reorders docs by the model's judgment. Documents the model
// names come first with position-scaled score boosts, the rest keep
// their heuristic order behind them.
func (r *Reranker) Rerank(ctx context.Context, query string, docs []model.Document) []model.Document {
	if len(docs) < rerankMinDocs {
		return docs
	}

	limit := len(docs)
	if limit > rerankMaxDocs {
		limit = rerankMaxDocs
	}
	summaries := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		summaries = append(summaries, documentSummary(&docs[i], i+1))
	}

	start := time.Now()
	response, err := r.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: rerankSystem},
		{Role: llm.RoleUser, Content: rerankPrompt(query, summaries)},
	}, llm.ChatOptions{Temperature: 0.1, MaxTokens: 500})
	if err != nil {
		metrics.RecordLLMCall("rerank", "error", time.Since(start).Seconds())
		r.logger.Warn("rerank failed, keeping heuristic order", zap.Error(err))
		return docs
	}
	metrics.RecordLLMCall("rerank", "ok", time.Since(start).Seconds())

	ranking := parseRanking(response)
	if len(ranking) == 0 {
		r.logger.Warn("rerank response had no usable ranking")
		return docs
	}

	merged := mergeRanking(docs, ranking)
	r.logger.Debug("rerank complete",
		zap.Int("documents", len(merged)),
		zap.Int("ranked_by_model", len(ranking)))
	return merged
}

func documentSummary(doc *model.Document, index int) string {
	title := doc.Title
	if title == "" {
		title = "Untitled"
	}
	domain := doc.Domain
	if domain == "" {
		domain = "unknown"
	}
	published := doc.Published
	if published == "" {
		published = "Unknown"
	}
	preview := doc.Text
	if len(preview) > 300 {
		preview = preview[:300] + "..."
	}

	return fmt.Sprintf("\n%d. %s\nDomain: %s\nDate: %s\nPreview: %s\n",
		index, title, domain, published, preview)
}

func rerankPrompt(query string, summaries []string) string {
	return fmt.Sprintf(`Query: %q

Please rank the following documents by their relevance to the query. Consider:
1. Direct relevance to the query topic
2. Authority and credibility of the source
3. Recency and currency of information
4. Depth and quality of content

Documents:
%s

Respond with a ranked list of document numbers (most relevant first), with brief reasoning:
Example: "1, 5, 3, 2, 4 - Document 1 directly addresses the query with recent data from an authoritative source..."`,
		query, strings.Join(summaries, "\n"))
}

var rankNumberRe = regexp.MustCompile(`\b\d+\b`)

// parseRanking pulls document numbers out of the model's free-text
// response: in-range numbers only, first mention wins, everything else
// is ignored.
func parseRanking(response string) []int {
	seen := make(map[int]bool)
	var ranking []int
	for _, token := range rankNumberRe.FindAllString(response, -1) {
		n, err := strconv.Atoi(token)
		if err != nil || n < 1 || n > rerankMaxDocs {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		ranking = append(ranking, n)
	}
	return ranking
}

// mergeRanking emits the documents the model named first, in model
// order, boosting each score by 1 + 0.1*(L-position) so earlier picks
// gain more, then appends the unmentioned documents in their original
// order.
func mergeRanking(docs []model.Document, ranking []int) []model.Document {
	merged := make([]model.Document, 0, len(docs))
	used := make(map[int]bool, len(ranking))

	for pos, num := range ranking {
		if num > len(docs) {
			continue
		}
		doc := docs[num-1]
		doc.Score *= 1 + 0.1*float64(len(ranking)-pos)
		merged = append(merged, doc)
		used[num] = true
	}

	for i := range docs {
		if !used[i+1] {
			merged = append(merged, docs[i])
		}
	}
	return merged
}
