// Package evidence builds the claim-to-source matrix for a finished
// answer and audits the answer against it. Both passes share one
// sentence filter so they agree on what counts as a factual claim.
package evidence

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/textutil"
)

const maxClaimLen = 200

var (
	citationRe       = regexp.MustCompile(`\[(\d+)\]`)
	citationMarkerRe = regexp.MustCompile(`\[\d+\]`)
)

// Builder derives evidence entries from answer text and the numbered
// source list the citations refer to.
type Builder struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger, now: time.Now}
}

// Build walks the answer's factual claims and emits one entry per
// (claim, citation) pair that a pull quote can back. Citations outside
// the source list and claims no quote overlaps are skipped. Entries
// keep answer order and are not deduplicated: a claim citing the same
// source twice yields two entries.
func (b *Builder) Build(answer string, sources []model.Source) []model.EvidenceEntry {
	claims := extractClaims(answer)

	var matrix []model.EvidenceEntry
	for _, cc := range claims {
		for _, id := range cc.citations {
			if id < 1 || id > len(sources) {
				continue
			}
			source := sources[id-1]

			quote, ok := bestQuote(cc.claim, source.Quotes)
			if !ok {
				continue
			}

			claim := cc.claim
			if len(claim) > maxClaimLen {
				claim = claim[:maxClaimLen] + "..."
			}

			matrix = append(matrix, model.EvidenceEntry{
				Claim:       claim,
				Quote:       quote,
				SourceID:    id,
				SourceURL:   source.URL,
				SourceTitle: source.Title,
				SourceDate:  source.Date,
				Confidence:  b.entryConfidence(cc.claim, quote, source),
			})
		}
	}

	counts := make(map[string]int)
	for _, entry := range matrix {
		counts[entry.Confidence]++
	}
	for _, tier := range []string{model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow} {
		if counts[tier] > 0 {
			metrics.RecordEvidence(tier, counts[tier])
		}
	}

	b.logger.Info("evidence matrix built",
		zap.Int("claims", len(claims)),
		zap.Int("entries", len(matrix)),
		zap.Int("high", counts[model.ConfidenceHigh]),
		zap.Int("medium", counts[model.ConfidenceMedium]),
		zap.Int("low", counts[model.ConfidenceLow]))

	return matrix
}

type claimCitations struct {
	claim     string // citation markers stripped
	citations []int  // in marker order, repeats kept
}

func extractClaims(answer string) []claimCitations {
	var claims []claimCitations
	for _, sentence := range textutil.SplitSentences(answer) {
		if !isFactualClaim(sentence) {
			continue
		}

		var ids []int
		for _, m := range citationRe.FindAllStringSubmatch(sentence, -1) {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}

		claims = append(claims, claimCitations{
			claim:     strings.TrimSpace(citationMarkerRe.ReplaceAllString(sentence, "")),
			citations: ids,
		})
	}
	return claims
}

// introPhrases mark a sentence as commentary rather than a checkable
// claim.
var introPhrases = []string{
	"in conclusion", "to summarize", "overall", "in summary",
	"this suggests", "this indicates", "for example", "for instance",
}

// factualIndicators qualify a sentence as a factual claim. Substring
// matched: "is" also hits inside "this" or "crisis".
var factualIndicators = []string{
	"is", "are", "was", "were", "has", "have", "had",
	"will", "would", "shows", "indicates", "reports",
	"according to", "data", "study", "research",
}

// isFactualClaim filters sentences worth checking. Questions and
// transitional commentary never qualify; otherwise an indicator word
// or a citation marker does. The marker clause keeps cited sentences
// in scope whatever their verb.
func isFactualClaim(sentence string) bool {
	if strings.Contains(sentence, "?") {
		return false
	}

	lower := strings.ToLower(sentence)
	for _, phrase := range introPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, indicator := range factualIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return citationMarkerRe.MatchString(sentence)
}

// bestQuote picks the pull quote sharing the most normalized words
// with the claim. Fewer than two shared words never matches; ties
// keep the earliest quote.
func bestQuote(claim string, quotes []string) (string, bool) {
	claimWords := textutil.WordSet(claim)

	best := ""
	bestOverlap := 0
	for _, quote := range quotes {
		overlap := textutil.Overlap(claimWords, textutil.WordSet(quote))
		if overlap > bestOverlap && overlap >= 2 {
			bestOverlap = overlap
			best = quote
		}
	}
	return best, best != ""
}

// entryConfidence grades one claim-to-quote pairing as source
// authority times recency times quote relevance.
func (b *Builder) entryConfidence(claim, quote string, source model.Source) string {
	score := authorityFactor(source.Domain) * b.recencyFactor(source.Date) * relevanceFactor(claim, quote)
	switch {
	case score >= 4.0:
		return model.ConfidenceHigh
	case score >= 2.5:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func authorityFactor(domain string) float64 {
	domain = strings.ToLower(domain)
	switch {
	case containsAny(domain, ".gov", ".mil"):
		return 3
	case containsAny(domain, ".edu", ".europa.eu"):
		return 2.5
	case containsAny(domain, ".org", ".int"):
		return 2
	case containsAny(domain, "reuters", "bbc", "economist"):
		return 1.5
	default:
		return 1
	}
}

// recencyFactor scans the date string for the publication year, since
// source dates arrive in whatever format the page carried.
func (b *Builder) recencyFactor(date string) float64 {
	year := b.now().Year()
	switch {
	case strings.Contains(date, strconv.Itoa(year)) || strings.Contains(date, strconv.Itoa(year-1)):
		return 1.5
	case strings.Contains(date, strconv.Itoa(year-2)):
		return 1.2
	default:
		return 1.0
	}
}

// relevanceFactor maps quote overlap onto [0.5, 1.5] relative to the
// claim's word count.
func relevanceFactor(claim, quote string) float64 {
	claimWords := textutil.WordSet(claim)
	overlap := textutil.Overlap(claimWords, textutil.WordSet(quote))

	denom := len(claimWords)
	if denom == 0 {
		denom = 1
	}
	factor := 0.5 + float64(overlap)/float64(denom)
	if factor > 1.5 {
		factor = 1.5
	}
	return factor
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
