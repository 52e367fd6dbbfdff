package evidence

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/textutil"
)

// Validator audits a finished answer against its evidence matrix. Its
// findings are diagnostic: they ship with the report and never change
// the answer.
type Validator struct {
	logger *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate reports factual sentences no evidence entry backs, cited
// sources with no evidence entry, and answers whose evidence skews
// low-confidence.
func (v *Validator) Validate(answer string, matrix []model.EvidenceEntry) []model.ValidationIssue {
	var issues []model.ValidationIssue

	sentences := textutil.SplitSentences(answer)
	for _, sentence := range sentences {
		if !isFactualClaim(sentence) {
			continue
		}
		if !claimSupported(sentence, matrix) {
			issues = append(issues, model.ValidationIssue{
				Claim:    sentence,
				Issue:    "No supporting evidence found",
				Severity: model.SeverityMedium,
			})
		}
	}

	for _, citation := range uniqueCitationIDs(answer) {
		cited := false
		for _, entry := range matrix {
			if entry.SourceID == citation {
				cited = true
				break
			}
		}
		if !cited {
			issues = append(issues, model.ValidationIssue{
				Claim:    fmt.Sprintf("Citation [%d] referenced but no evidence found", citation),
				Issue:    "Missing citation evidence",
				Severity: model.SeverityHigh,
			})
		}
	}

	low := 0
	for _, entry := range matrix {
		if entry.Confidence == model.ConfidenceLow {
			low++
		}
	}
	if len(matrix) > 0 && float64(low)/float64(len(matrix)) > 0.5 {
		issues = append(issues, model.ValidationIssue{
			Claim:    "Overall answer reliability",
			Issue:    fmt.Sprintf("High proportion of low-confidence evidence (%d/%d)", low, len(matrix)),
			Severity: model.SeverityMedium,
		})
	}

	high := 0
	for _, issue := range issues {
		if issue.Severity == model.SeverityHigh {
			high++
		}
	}
	v.logger.Info("answer validated",
		zap.Int("sentences", len(sentences)),
		zap.Int("issues", len(issues)),
		zap.Int("high_severity", high),
		zap.Int("medium_severity", len(issues)-high))

	return issues
}

// claimSupported reports whether any matrix entry's claim shares
// enough normalized words with the sentence: two, or 30% of the
// sentence's word count when that is more. The sentence keeps its
// citation markers here, so the digits count as words.
func claimSupported(sentence string, matrix []model.EvidenceEntry) bool {
	words := textutil.WordSet(sentence)

	threshold := float64(len(words)) * 0.3
	if threshold < 2 {
		threshold = 2
	}

	for _, entry := range matrix {
		overlap := textutil.Overlap(words, textutil.WordSet(entry.Claim))
		if float64(overlap) >= threshold {
			return true
		}
	}
	return false
}

// uniqueCitationIDs returns the distinct citation numbers in the
// answer, in first-appearance order.
func uniqueCitationIDs(answer string) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, m := range citationRe.FindAllStringSubmatch(answer, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
