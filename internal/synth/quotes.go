package synth

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxQuotes         = 4
	maxQuoteLen       = 280
	quoteCandidateCap = 50  // sentences considered per document
	quoteThreshold    = 0.3 // minimum quote-worthiness score
)

var quoteSplitRe = regexp.MustCompile(`[.!?]+`)

// ExtractQuotes picks up to four quotable sentences from document
// text, favoring specific, factual statements.
func ExtractQuotes(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	for _, part := range quoteSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if len(part) > 20 {
			sentences = append(sentences, part)
		}
	}
	if len(sentences) > quoteCandidateCap {
		sentences = sentences[:quoteCandidateCap]
	}

	type scoredSentence struct {
		score    float64
		sentence string
	}
	var candidates []scoredSentence
	for _, sentence := range sentences {
		if score := scoreQuoteSentence(sentence); score > quoteThreshold {
			candidates = append(candidates, scoredSentence{score, sentence})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	quotes := make([]string, 0, maxQuotes)
	for i := 0; i < len(candidates) && i < maxQuotes; i++ {
		quote := candidates[i].sentence
		if len(quote) > maxQuoteLen {
			quote = quote[:maxQuoteLen-3] + "..."
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

var (
	quoteYearRe    = regexp.MustCompile(`\b\d{4}\b`)
	quotePercentRe = regexp.MustCompile(`\b\d+%\b`)
	quoteMoneyRe   = regexp.MustCompile(`\$\d+`)
)

var quoteIndicators = []string{"according to", "reported", "study shows", "data indicates", "research found"}

var weakOpeners = []string{"This ", "These ", "It ", "They "}

// scoreQuoteSentence rates one sentence, never below zero. Medium
// length, concrete figures and reporting language score up; vague
// openers and questions score down.
func scoreQuoteSentence(sentence string) float64 {
	score := 0.0

	length := len(sentence)
	switch {
	case length >= 50 && length <= 200:
		score += 0.3
	case length > 200 && length <= maxQuoteLen:
		score += 0.2
	default:
		score -= 0.1
	}

	if quoteYearRe.MatchString(sentence) {
		score += 0.2
	}
	if quotePercentRe.MatchString(sentence) {
		score += 0.2
	}
	if quoteMoneyRe.MatchString(sentence) {
		score += 0.15
	}

	lower := strings.ToLower(sentence)
	for _, indicator := range quoteIndicators {
		if strings.Contains(lower, indicator) {
			score += 0.15
			break
		}
	}

	for _, opener := range weakOpeners {
		if strings.HasPrefix(sentence, opener) {
			score -= 0.1
			break
		}
	}
	if strings.Contains(sentence, "?") {
		score -= 0.1
	}

	if score < 0 {
		return 0
	}
	return score
}
