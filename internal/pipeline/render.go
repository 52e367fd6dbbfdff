package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vportnov/indago/internal/model"
)

const reportFooter = "Generated by indago. Answers are synthesized from public web sources; verify critical facts against the citations."

// Renderer writes reports as JSON, Markdown, or a terminal summary.
type Renderer struct {
	includeFooter bool
}

func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Research Report\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", report.Query)
	fmt.Fprintf(&b, "**Date:** %s  \n", report.CreatedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "**Confidence:** %s | **Citations:** %d | **Fact-check:** %s\n\n",
		report.Confidence, report.CitationsCount, report.FactcheckStatus)

	b.WriteString("## Answer\n\n")
	b.WriteString(report.Answer)
	b.WriteString("\n\n")

	if len(report.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range report.Sources {
			fmt.Fprintf(&b, "**[%d] %s**  \n", src.ID, src.Title)
			fmt.Fprintf(&b, "<%s>", src.URL)
			if src.Date != "" {
				fmt.Fprintf(&b, " · %s", src.Date)
			}
			b.WriteString("\n\n")
			for _, quote := range src.Quotes {
				fmt.Fprintf(&b, "> %s\n\n", quote)
			}
		}
	}

	if len(report.EvidenceMatrix) > 0 {
		b.WriteString("## Evidence\n\n")
		for _, entry := range report.EvidenceMatrix {
			fmt.Fprintf(&b, "- **%s** — %s\n", entry.Confidence, entry.Claim)
			fmt.Fprintf(&b, "  - [%d] %s", entry.SourceID, entry.SourceTitle)
			if entry.SourceDate != "" {
				fmt.Fprintf(&b, " (%s)", entry.SourceDate)
			}
			b.WriteString("\n")
			if entry.Quote != "" {
				fmt.Fprintf(&b, "  - \"%s\"\n", entry.Quote)
			}
		}
		b.WriteString("\n")
	}

	if len(report.Validation) > 0 {
		b.WriteString("## Validation Issues\n\n")
		for _, issue := range report.Validation {
			fmt.Fprintf(&b, "- **%s:** %s\n", issue.Severity, issue.Issue)
			fmt.Fprintf(&b, "  - %s\n", issue.Claim)
		}
		b.WriteString("\n")
	}

	if len(report.FollowUps) > 0 {
		b.WriteString("## Suggested Follow-ups\n\n")
		for _, q := range report.FollowUps {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Run Details\n\n")
	if report.QueryType != "" {
		fmt.Fprintf(&b, "- Query type: %s\n", report.QueryType)
	}
	fmt.Fprintf(&b, "- Sources found: %d, used: %d\n", report.Stats.SourcesFound, report.Stats.SourcesUsed)
	fmt.Fprintf(&b, "- Queries expanded: %d\n", report.Stats.QueriesExpanded)
	fmt.Fprintf(&b, "- Processing time: %.1fs\n", report.Stats.ElapsedSeconds)
	fmt.Fprintf(&b, "- Run ID: %s\n", report.RunID)
	if len(report.ExpandedQueries) > 0 {
		b.WriteString("- Expanded queries:\n")
		for _, q := range report.ExpandedQueries {
			fmt.Fprintf(&b, "  - %s\n", q)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString(reportFooter)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the answer and source list to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println(report.Answer)
	fmt.Println(strings.Repeat("═", 60))

	if len(report.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range report.Sources {
			fmt.Printf("  [%d] %s\n      %s\n", src.ID, src.Title, src.URL)
		}
	}

	fmt.Printf("\nConfidence: %s | Citations: %d | Fact-check: %s\n",
		report.Confidence, report.CitationsCount, report.FactcheckStatus)
	fmt.Printf("Evidence entries: %d", len(report.EvidenceMatrix))
	if len(report.Validation) > 0 {
		fmt.Printf(" | Validation issues: %d", len(report.Validation))
	}
	fmt.Println()

	if len(report.FollowUps) > 0 {
		fmt.Println("\nTry refining with:")
		for _, q := range report.FollowUps {
			fmt.Printf("  • %s\n", q)
		}
	}

	if r.includeFooter {
		fmt.Printf("\n%s\n", reportFooter)
	}
}
