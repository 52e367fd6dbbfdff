// Package rank orders scraped documents by expected usefulness to the
// query before synthesis sees them: a weighted heuristic score, a
// domain diversity penalty, and an optional LLM refinement pass over
// the top candidates.
package rank

import (
	"strings"
	"time"

	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/util"
)

// BM25 parameters. The average document length is assumed rather than
// measured; scores only need to order documents within one batch.
const (
	bm25K1       = 1.2
	bm25B        = 0.75
	avgDocLength = 500.0
)

// Scorer calculates heuristic relevance scores.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score calculates the weighted relevance of one document. The weights
// are fixed design constants.
func (s *Scorer) Score(doc *model.Document, queryTerms []string) float64 {
	// 1. BM25-style term relevance (weight 0.4)
	relevance := s.relevanceScore(doc, queryTerms)

	// 2. Domain authority (weight 0.3)
	domain := domainScore(doc.Domain)

	// 3. Recency (weight 0.2)
	recency := s.recencyScore(doc.Published)

	// 4. Content length (weight 0.1)
	length := lengthScore(doc.WordCount)

	return relevance*0.4 + domain*0.3 + recency*0.2 + length*0.1
}

// relevanceScore computes a BM25-style term match score over title and
// body tokens. Title occurrences are counted twice more on top of the
// body count, so a title match is worth roughly three body matches.
func (s *Scorer) relevanceScore(doc *model.Document, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	title := strings.ToLower(doc.Title)
	content := strings.ToLower(doc.Text)

	counts := make(map[string]int)
	docLength := 0
	for _, word := range strings.Fields(title) {
		counts[word]++
		docLength++
	}
	for _, word := range strings.Fields(content) {
		counts[word]++
		docLength++
	}
	if docLength == 0 {
		return 0
	}

	lengthNorm := bm25K1 * (1 - bm25B + bm25B*(float64(docLength)/avgDocLength))

	score := 0.0
	for _, term := range queryTerms {
		tf := float64(counts[term])
		tf += float64(strings.Count(title, term)) * 2
		if tf > 0 {
			score += (tf * (bm25K1 + 1)) / (tf + lengthNorm)
		}
	}
	return score
}

// domainScore rates the authority of a source domain.
func domainScore(domain string) float64 {
	if domain == "" {
		return 0.5
	}
	domain = strings.ToLower(domain)

	switch {
	case containsAny(domain, ".gov", ".mil"):
		return 1.0
	case containsAny(domain, ".edu", ".ac.uk", ".europa.eu"):
		return 0.95
	case containsAny(domain, ".org", ".int"):
		return 0.85
	case containsAny(domain, "reuters", "bbc", "economist", "nature", "science"):
		return 0.8
	case containsAny(domain, "wikipedia", "arxiv", "pubmed"):
		return 0.75
	case containsAny(domain, "techcrunch", "wired", "arstechnica"):
		return 0.7
	default:
		return 0.6
	}
}

// recencyScore rewards fresh documents with diminishing steps. Unknown
// or unparseable dates score neutral.
func (s *Scorer) recencyScore(published string) float64 {
	if published == "" {
		return 0.5
	}
	date, ok := util.ParseDate(published)
	if !ok {
		return 0.5
	}

	months := util.MonthsBetween(s.now(), date)
	switch {
	case months <= 3:
		return 1.0
	case months <= 12:
		return 0.8
	case months <= 24:
		return 0.6
	default:
		return 0.4
	}
}

// lengthScore prefers substantial but not excessive content.
func lengthScore(wordCount int) float64 {
	switch {
	case wordCount < 100:
		return 0.3
	case wordCount < 500:
		return 0.7
	case wordCount < 2000:
		return 1.0
	case wordCount < 5000:
		return 0.8
	default:
		return 0.6
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
