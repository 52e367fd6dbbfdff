package rank

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/llm"
	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/textutil"
)

// Ranker produces the document ordering synthesis consumes.
type Ranker struct {
	scorer   *Scorer
	reranker *Reranker // nil disables the LLM pass
	logger   *zap.Logger
}

// NewRanker creates a Ranker. The LLM pass is wired in only when the
// configuration asks for it and a provider is available.
func NewRanker(cfg *model.Config, provider llm.Provider, logger *zap.Logger) *Ranker {
	r := &Ranker{scorer: NewScorer(), logger: logger}
	if cfg.Rank.LLMRerank && provider != nil {
		r.reranker = NewReranker(provider, logger)
	}
	return r
}

// Rank scores the documents, applies the domain diversity penalty in
// input order, and sorts descending by score with input order breaking
// ties. When the LLM pass is enabled it refines the sorted list.
func (r *Ranker) Rank(ctx context.Context, query string, docs []model.Document) []model.Document {
	if len(docs) == 0 {
		return docs
	}

	terms := textutil.Tokens(query)

	ranked := make([]model.Document, len(docs))
	copy(ranked, docs)
	for i := range ranked {
		ranked[i].Score = r.scorer.Score(&ranked[i], terms)
	}

	ApplyDiversityPenalty(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if r.reranker != nil {
		ranked = r.reranker.Rerank(ctx, query, ranked)
	}

	r.logger.Debug("ranking complete",
		zap.Int("documents", len(ranked)),
		zap.Float64("top_score", ranked[0].Score))
	return ranked
}
