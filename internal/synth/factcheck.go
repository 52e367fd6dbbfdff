package synth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/model"
)

// Verdict markers the fact-check prompt instructs the model to emit,
// matched by substring. When both appear, pass wins.
const (
	factcheckPassMarker   = "FACTCHECK_PASS"
	factcheckIssuesMarker = "FACTCHECK_ISSUES"
)

const (
	maxFactcheckIssues     = 5
	revisionIssueThreshold = 2 // more issues than this trigger regeneration
)

type factcheckResult struct {
	needsRevision bool
	issues        []string
}

// factcheck audits the answer against its sources. Every failure mode
// resolves to "no revision needed": the check can only ever add one
// regeneration, never block an answer.
func (s *Synthesizer) factcheck(ctx context.Context, answer string, docs []model.Document) factcheckResult {
	response, err := s.chat(ctx, "factcheck", systemFactcheck, factcheckContext(answer, docs), 0.1, 500)
	if err != nil {
		s.logger.Warn("factcheck failed, trusting the answer", zap.Error(err))
		return factcheckResult{}
	}

	switch {
	case strings.Contains(response, factcheckPassMarker):
		return factcheckResult{}
	case strings.Contains(response, factcheckIssuesMarker):
		issues := parseFactcheckIssues(response)
		return factcheckResult{
			needsRevision: len(issues) > revisionIssueThreshold,
			issues:        issues,
		}
	default:
		return factcheckResult{}
	}
}

func factcheckContext(answer string, docs []model.Document) string {
	summaries := make([]string, 0, len(docs))
	for i, doc := range docs {
		text := doc.Text
		if len(text) > 500 {
			text = text[:500]
		}
		summaries = append(summaries, fmt.Sprintf("[%d] %s (%s): %s...", i+1, doc.Title, doc.Domain, text))
	}

	return fmt.Sprintf(`Answer to fact-check:
%s

Available Sources:
%s

Check all factual claims, citations, and quotes for accuracy.`, answer, strings.Join(summaries, "\n"))
}

var issueLineRe = regexp.MustCompile(`\d+\.\s*([^\n]+)`)

// parseFactcheckIssues pulls the numbered problem lines out of the
// model's verdict, capped at five.
func parseFactcheckIssues(response string) []string {
	section := response
	if idx := strings.LastIndex(response, factcheckIssuesMarker+":"); idx >= 0 {
		section = response[idx+len(factcheckIssuesMarker)+1:]
	}

	var issues []string
	for _, m := range issueLineRe.FindAllStringSubmatch(section, -1) {
		issues = append(issues, m[1])
		if len(issues) == maxFactcheckIssues {
			break
		}
	}
	return issues
}

// regenerate reruns synthesis once with the found issues spelled out
// and a stricter system prompt. The caller keeps the original answer
// if this fails; there is no second fact-check of the result.
func (s *Synthesizer) regenerate(ctx context.Context, query string, docs []model.Document, issues []string) (string, error) {
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, "- "+issue)
	}

	prompt := fmt.Sprintf(`Query: %q

The previous answer had these factual issues:
%s

Please generate a new answer that addresses these concerns. Be more conservative with claims and ensure all citations are accurate.

Sources:
%s`, query, strings.Join(lines, "\n"), sourcesContext(docs))

	return s.chat(ctx, "synthesis", systemResearch+strictnessSuffix, prompt, 0.1, 800)
}
