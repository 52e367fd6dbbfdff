package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Query types recognized by rule-based analysis.
const (
	QueryTypeList       = "list"
	QueryTypeComparison = "comparison"
	QueryTypeHowTo      = "how_to"
	QueryTypeAnalysis   = "analysis"
	QueryTypeFactual    = "factual"
)

// Analysis is the rule-based breakdown of a research query.
type Analysis struct {
	Query        string
	Type         string
	Entities     []string
	SubQuestions []string
	FollowUps    []string
}

// typePatterns are checked in order; the first type with a matching
// keyword wins, factual is the fallback.
var typePatterns = []struct {
	queryType string
	keywords  []string
}{
	{QueryTypeList, []string{
		"find", "list", "show me", "what are", "examples of", "types of",
		"companies that", "businesses", "services", "products",
	}},
	{QueryTypeComparison, []string{
		"compare", "vs", "versus", "difference between", "better than",
		"pros and cons", "advantages", "disadvantages",
	}},
	{QueryTypeHowTo, []string{
		"how to", "how do", "how can", "steps to", "guide to",
		"tutorial", "instructions", "process",
	}},
	{QueryTypeAnalysis, []string{
		"analyze", "analysis", "why", "what causes", "impact of",
		"effects of", "implications", "trends", "future of",
	}},
}

var entityStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "about": true, "what": true, "are": true,
	"is": true, "find": true, "me": true, "that": true,
}

var (
	entityWordRe = regexp.MustCompile(`\b[A-Za-z]+\b`)
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// AnalyzeQuery classifies the query and derives sub-questions and
// follow-up suggestions without any LLM involvement.
func AnalyzeQuery(query string) Analysis {
	queryType := classifyQuery(strings.ToLower(query))
	entities := extractEntities(query)

	return Analysis{
		Query:        query,
		Type:         queryType,
		Entities:     entities,
		SubQuestions: subQuestions(query, queryType, entities),
		FollowUps:    followUps(query, queryType),
	}
}

func classifyQuery(queryLower string) string {
	for _, entry := range typePatterns {
		for _, keyword := range entry.keywords {
			if strings.Contains(queryLower, keyword) {
				return entry.queryType
			}
		}
	}
	return QueryTypeFactual
}

// extractEntities keeps longer non-stop words plus capitalized proper
// nouns, deduplicated first-seen, capped at 10.
func extractEntities(query string) []string {
	var entities []string
	seen := make(map[string]bool)

	add := func(entity string) {
		if entity == "" || seen[entity] || len(entities) >= 10 {
			return
		}
		seen[entity] = true
		entities = append(entities, entity)
	}

	for _, word := range entityWordRe.FindAllString(strings.ToLower(query), -1) {
		if len(word) <= 3 || entityStopWords[word] {
			continue
		}
		if strings.HasSuffix(word, "ing") || strings.HasSuffix(word, "ed") {
			continue
		}
		add(strings.ToUpper(word[:1]) + word[1:])
	}

	for _, noun := range properNounRe.FindAllString(query, -1) {
		add(noun)
	}

	return entities
}

func subQuestions(query, queryType string, entities []string) []string {
	switch queryType {
	case QueryTypeList:
		if len(entities) > 0 {
			entity := strings.ToLower(entities[0])
			return []string{
				fmt.Sprintf("What are the best %s options?", entity),
				fmt.Sprintf("Where can I find reliable %s?", entity),
				fmt.Sprintf("What criteria should I use to evaluate %s?", entity),
				fmt.Sprintf("What are recent developments in %s?", entity),
			}
		}
		return []string{
			"What are the main options available?",
			"What are the key characteristics?",
			"Where can I find more information?",
			"What should I consider when choosing?",
		}
	case QueryTypeComparison:
		return []string{
			"What are the main differences?",
			"What are the advantages and disadvantages?",
			"Which option is better for specific use cases?",
			"What do experts recommend?",
		}
	case QueryTypeHowTo:
		return []string{
			"What are the step-by-step instructions?",
			"What tools or resources are needed?",
			"What are common mistakes to avoid?",
			"What are best practices?",
		}
	case QueryTypeAnalysis:
		return []string{
			"What are the current trends?",
			"What factors contribute to this?",
			"What are the implications?",
			"What do experts predict for the future?",
		}
	default:
		return []string{
			fmt.Sprintf("What is %s?", query),
			"What are the key facts?",
			"What is the current status?",
			"What are reliable sources?",
		}
	}
}

func followUps(query, queryType string) []string {
	switch queryType {
	case QueryTypeList:
		return []string{
			fmt.Sprintf("What are the costs associated with %s?", query),
			fmt.Sprintf("How do I evaluate the best options for %s?", query),
			fmt.Sprintf("What are the pros and cons of different %s?", query),
			fmt.Sprintf("Where can I find more detailed information about %s?", query),
		}
	case QueryTypeComparison:
		return []string{
			fmt.Sprintf("What factors should I consider when choosing between %s?", query),
			fmt.Sprintf("What do experts recommend for %s?", query),
			fmt.Sprintf("Are there any new developments in %s?", query),
			fmt.Sprintf("What are the long-term implications of %s?", query),
		}
	case QueryTypeHowTo:
		return []string{
			fmt.Sprintf("What tools or resources do I need for %s?", query),
			fmt.Sprintf("What are common mistakes to avoid with %s?", query),
			fmt.Sprintf("How long does it typically take to %s?", query),
			fmt.Sprintf("What are the best practices for %s?", query),
		}
	case QueryTypeAnalysis:
		return []string{
			fmt.Sprintf("What are the future trends for %s?", query),
			fmt.Sprintf("How does %s compare to previous years?", query),
			fmt.Sprintf("What factors are driving changes in %s?", query),
			fmt.Sprintf("What are experts predicting about %s?", query),
		}
	default:
		return []string{
			fmt.Sprintf("What are the latest updates on %s?", query),
			fmt.Sprintf("How does %s work in practice?", query),
			fmt.Sprintf("What are common misconceptions about %s?", query),
			fmt.Sprintf("Where can I find official information about %s?", query),
		}
	}
}
