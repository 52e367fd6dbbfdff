// Package synth turns ranked documents into a cited answer: one
// synthesis call, a fact-check audit with at most one stricter
// regeneration, and a sources list with pull quotes drawn from the
// documents themselves.
package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/llm"
	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
)

const (
	maxContextDocs   = 8    // documents shown to the model
	maxContextChars  = 1500 // per-document text budget in the prompt
	errorSourceLimit = 5    // sources still reported when synthesis fails
)

const noSourcesAnswer = "No reliable sources found for this query. Please try rephrasing or checking your internet connection."

// Result is the outcome of one synthesis run.
type Result struct {
	Answer          string
	Sources         []model.Source
	Confidence      string
	CitationsCount  int
	FactcheckStatus string
}

// Synthesizer produces cited answers from ranked documents.
type Synthesizer struct {
	provider llm.Provider
	logger   *zap.Logger
	now      func() time.Time
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(provider llm.Provider, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{provider: provider, logger: logger, now: time.Now}
}

// Synthesize answers the query from the given documents. Only the top
// eight documents reach the model. Synthesis failures degrade to an
// error answer with a partial source list; they are never returned as
// errors.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, docs []model.Document) *Result {
	if len(docs) == 0 {
		return &Result{
			Answer:          noSourcesAnswer,
			Sources:         []model.Source{},
			Confidence:      model.ConfidenceNone,
			FactcheckStatus: model.FactcheckSkipped,
		}
	}

	top := docs
	if len(top) > maxContextDocs {
		top = top[:maxContextDocs]
	}

	answer, err := s.chat(ctx, "synthesis", systemResearch, synthesisPrompt(query, sourcesContext(top)), 0.2, 800)
	if err != nil {
		s.logger.Error("synthesis failed", zap.Error(err))
		partial := top
		if len(partial) > errorSourceLimit {
			partial = partial[:errorSourceLimit]
		}
		return &Result{
			Answer:          fmt.Sprintf("An error occurred during answer synthesis: %v. Please try again or contact support.", err),
			Sources:         buildSources(partial),
			Confidence:      model.ConfidenceError,
			FactcheckStatus: model.FactcheckSkipped,
		}
	}

	check := s.factcheck(ctx, answer, top)
	status := model.FactcheckPassed
	if check.needsRevision {
		status = model.FactcheckRevised
		metrics.FactcheckRevisions.Inc()
		s.logger.Info("answer revision needed", zap.Int("issues", len(check.issues)))

		if revised, err := s.regenerate(ctx, query, top, check.issues); err == nil {
			answer = revised
		} else {
			s.logger.Warn("regeneration failed, keeping original answer", zap.Error(err))
		}
	}

	result := &Result{
		Answer:          answer,
		Sources:         buildSources(top),
		Confidence:      s.assessConfidence(answer, top),
		CitationsCount:  len(uniqueCitations(answer)),
		FactcheckStatus: status,
	}

	s.logger.Info("synthesis complete",
		zap.Int("answer_length", len(result.Answer)),
		zap.Int("sources", len(result.Sources)),
		zap.String("confidence", result.Confidence),
		zap.String("factcheck_status", result.FactcheckStatus))

	return result
}

func (s *Synthesizer) chat(ctx context.Context, kind, system, user string, temperature float64, maxTokens int) (string, error) {
	start := time.Now()
	response, err := s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.ChatOptions{Temperature: temperature, MaxTokens: maxTokens})

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordLLMCall(kind, status, time.Since(start).Seconds())

	return response, err
}

// sourcesContext renders the numbered source blocks the system prompt
// refers to. The numbering here defines what the [n] markers mean.
func sourcesContext(docs []model.Document) string {
	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		text := doc.Text
		if len(text) > maxContextChars {
			text = text[:maxContextChars] + "..."
		}
		published := doc.Published
		if published == "" {
			published = "Unknown"
		}
		blocks = append(blocks, fmt.Sprintf("\n[%d] %s\nURL: %s\nDomain: %s\nDate: %s\nContent: %s\n",
			i+1, doc.Title, doc.URL, doc.Domain, published, text))
	}
	return strings.Join(blocks, "\n")
}

func synthesisPrompt(query, sources string) string {
	return fmt.Sprintf(`Query: %q

Please synthesize a comprehensive answer based on the following sources. Follow the system instructions carefully.

Sources:
%s

Remember to:
1. Use numbered citations [1][2] for all factual claims
2. Create a Sources section with pull-quotes
3. Be concise but comprehensive (3-6 paragraphs)
4. State confidence level and suggest follow-up searches if needed`, query, sources)
}

// buildSources numbers the documents and attaches pull quotes from
// their own text. The list is derived from the input documents alone,
// not parsed back out of the model's answer.
func buildSources(docs []model.Document) []model.Source {
	sources := make([]model.Source, 0, len(docs))
	for i, doc := range docs {
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
			published = "Unknown date"
		}
		sources = append(sources, model.Source{
			ID:     i + 1,
			Title:  title,
			URL:    doc.URL,
			Domain: domain,
			Date:   published,
			Quotes: ExtractQuotes(doc.Text),
		})
	}
	return sources
}
