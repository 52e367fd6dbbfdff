package synth

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vportnov/indago/internal/model"
)

var citationRe = regexp.MustCompile(`\[(\d+)\]`)

// uniqueCitations returns the distinct citation numbers in the answer,
// in first-appearance order.
func uniqueCitations(answer string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, m := range citationRe.FindAllStringSubmatch(answer, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			unique = append(unique, m[1])
		}
	}
	return unique
}

var authorityDomains = []string{".gov", ".edu", ".europa.eu"}

// assessConfidence grades the answer from source authority, source
// recency and citation density. The model's own confidence statements
// are ignored. Citation density counts every marker, repeats included,
// unlike the report's unique citation count.
func (s *Synthesizer) assessConfidence(answer string, docs []model.Document) string {
	authoritative := 0
	for _, doc := range docs {
		for _, suffix := range authorityDomains {
			if strings.Contains(doc.Domain, suffix) {
				authoritative++
				break
			}
		}
	}

	now := s.now()
	currentYear := strconv.Itoa(now.Year())
	priorYear := strconv.Itoa(now.Year() - 1)
	recent := 0
	for _, doc := range docs {
		if doc.Published == "" {
			continue
		}
		if strings.Contains(doc.Published, currentYear) || strings.Contains(doc.Published, priorYear) {
			recent++
		}
	}

	citations := len(citationRe.FindAllString(answer, -1))

	switch {
	case authoritative >= 3 && citations >= 5 && recent >= 2:
		return model.ConfidenceHigh
	case authoritative >= 1 && citations >= 3:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
