// Package search expands research queries and runs them against a
// SearXNG meta-search instance.
package search

import (
	"fmt"
	"strings"
	"time"
)

const maxExpandedQueries = 8

// ExpandQuery turns one query into up to 8 variants: the original, two
// temporal constraints, authority site: biases, conditional context
// terms, and broader/narrower phrasings. Duplicates are dropped keeping
// first-seen order. The temporal variant pins the prior calendar year so
// engines bias toward recent material.
func ExpandQuery(query string, now time.Time) []string {
	base := strings.TrimSpace(query)
	lower := strings.ToLower(base)

	expanded := []string{base}

	expanded = append(expanded, fmt.Sprintf("%s since:%d", base, now.Year()-1))
	expanded = append(expanded, base+" last 24 months")

	expanded = append(expanded, "site:gov "+base)
	expanded = append(expanded, "site:europa.eu "+base)
	expanded = append(expanded, "site:edu "+base)

	if !strings.Contains(lower, "regulation") {
		expanded = append(expanded, base+" regulation compliance")
	}
	if !strings.Contains(lower, "policy") {
		expanded = append(expanded, base+" policy guidelines")
	}

	expanded = append(expanded, base+" overview")
	expanded = append(expanded, base+" implementation details")

	seen := make(map[string]bool, len(expanded))
	unique := make([]string, 0, len(expanded))
	for _, q := range expanded {
		if seen[q] {
			continue
		}
		seen[q] = true
		unique = append(unique, q)
		if len(unique) == maxExpandedQueries {
			break
		}
	}

	return unique
}
