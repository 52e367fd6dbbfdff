// Package pipeline wires the research stages together and renders the
// resulting report. Stages run sequentially; parallelism lives inside
// the search and scrape stages only.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/cache"
	"github.com/vportnov/indago/internal/evidence"
	"github.com/vportnov/indago/internal/llm"
	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/rank"
	"github.com/vportnov/indago/internal/scrape"
	"github.com/vportnov/indago/internal/search"
	"github.com/vportnov/indago/internal/synth"
	"github.com/vportnov/indago/internal/util"
)

// ErrInsufficientSources marks a run stopped early because too little
// material came back to synthesize from.
var ErrInsufficientSources = errors.New("insufficient sources")

// Minimum material to proceed: below either bound the run stops before
// any LLM call.
const (
	minSearchResults = 3
	minScrapedDocs   = 3
)

// Pipeline orchestrates one research run from query to report.
type Pipeline struct {
	searcher    *search.Client
	scraper     *scrape.Scraper
	ranker      *rank.Ranker
	synthesizer *synth.Synthesizer
	builder     *evidence.Builder
	validator   *evidence.Validator
	renderer    *Renderer
	logger      *zap.Logger
	config      *model.Config
	now         func() time.Time
}

// NewPipeline builds a pipeline from the given configuration. The LLM
// provider is required; synthesis cannot run without one.
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.ProxyURL))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		searcher:    search.NewClient(cfg, logger),
		scraper:     scrape.NewScraper(cfg, store, logger),
		ranker:      rank.NewRanker(cfg, provider, logger),
		synthesizer: synth.NewSynthesizer(provider, logger),
		builder:     evidence.NewBuilder(logger),
		validator:   evidence.NewValidator(logger),
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		logger:      logger,
		config:      cfg,
		now:         time.Now,
	}, nil
}

// Run executes the full research pipeline for one query.
func (p *Pipeline) Run(ctx context.Context, query string) (*model.Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}

	start := p.now()
	if p.config.Privacy.GDPRMode {
		p.logger.Info("research started", zap.Int("query_length", len(query)))
	} else {
		p.logger.Info("research started", zap.String("query", query))
	}

	// 1. Analyze and expand the query
	analysis := search.AnalyzeQuery(query)
	expanded := search.ExpandQuery(query, p.now())
	p.logger.Debug("query expanded",
		zap.String("query_type", analysis.Type),
		zap.Int("variants", len(expanded)))

	// 2. Meta-search across all variants
	searchStart := time.Now()
	results := p.searcher.SearchAll(ctx, expanded, p.config.Search.MaxResults)
	metrics.RecordStage("search", time.Since(searchStart).Seconds())

	if len(results) < minSearchResults {
		metrics.RecordRun("insufficient_sources", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: found %d search results, need at least %d; try a different query or check your connection",
			ErrInsufficientSources, len(results), minSearchResults)
	}

	// 3. Scrape the top hits
	pages := results
	if len(pages) > p.config.Concurrency.MaxPages {
		pages = pages[:p.config.Concurrency.MaxPages]
	}

	scrapeStart := time.Now()
	docs := p.scraper.ScrapeAll(ctx, pages)
	metrics.RecordStage("scrape", time.Since(scrapeStart).Seconds())

	if len(docs) < minScrapedDocs {
		metrics.RecordRun("insufficient_sources", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: only %d of %d pages could be fetched; many sources were inaccessible or blocked, try a different query",
			ErrInsufficientSources, len(docs), len(pages))
	}

	// 4. Rank and keep the top documents
	rankStart := time.Now()
	ranked := p.ranker.Rank(ctx, query, docs)
	metrics.RecordStage("rank", time.Since(rankStart).Seconds())

	top := ranked
	if len(top) > p.config.Rank.TopDocs {
		top = top[:p.config.Rank.TopDocs]
	}

	// 5. Synthesize, fact-check, revise
	synthStart := time.Now()
	result := p.synthesizer.Synthesize(ctx, query, top)
	metrics.RecordStage("synthesis", time.Since(synthStart).Seconds())

	answer := result.Answer
	sources := result.Sources
	if p.config.Privacy.GDPRMode {
		answer = util.Redact(answer)
		for i := range sources {
			for j := range sources[i].Quotes {
				sources[i].Quotes[j] = util.Redact(sources[i].Quotes[j])
			}
		}
	}

	// 6. Evidence matrix and validation over the final answer
	evidenceStart := time.Now()
	matrix := p.builder.Build(answer, sources)
	issues := p.validator.Validate(answer, matrix)
	metrics.RecordStage("evidence", time.Since(evidenceStart).Seconds())

	report := &model.Report{
		Query:           query,
		RunID:           uuid.NewString(),
		CreatedAt:       p.now().UTC(),
		Answer:          answer,
		Confidence:      result.Confidence,
		CitationsCount:  result.CitationsCount,
		FactcheckStatus: result.FactcheckStatus,
		Sources:         sources,
		EvidenceMatrix:  matrix,
		Validation:      issues,
		QueryType:       analysis.Type,
		SubQuestions:    analysis.SubQuestions,
		ExpandedQueries: expanded,
		Stats: model.Stats{
			SourcesFound:    len(results),
			SourcesUsed:     len(top),
			QueriesExpanded: len(expanded),
			ElapsedSeconds:  time.Since(start).Seconds(),
		},
	}
	if report.Confidence == model.ConfidenceLow {
		report.FollowUps = analysis.FollowUps
	}

	metrics.RecordRun("ok", time.Since(start).Seconds())
	p.logger.Info("research complete",
		zap.String("run_id", report.RunID),
		zap.String("confidence", report.Confidence),
		zap.String("factcheck_status", report.FactcheckStatus),
		zap.Int("sources", len(report.Sources)),
		zap.Int("evidence_entries", len(matrix)),
		zap.Float64("elapsed_seconds", report.Stats.ElapsedSeconds))

	return report, nil
}

// RenderReport writes the report to the requested outputs and prints a
// summary to stdout.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
