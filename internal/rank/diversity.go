package rank

import (
	"math"

	"github.com/vportnov/indago/internal/model"
)

// ApplyDiversityPenalty scales down scores of documents whose domain
// already appeared twice, walking the list in its current order: the
// third document from a domain keeps 0.9 of its score, the fourth
// 0.81, and so on. No document is removed.
func ApplyDiversityPenalty(docs []model.Document) {
	occurrences := make(map[string]int, len(docs))
	for i := range docs {
		occurrences[docs[i].Domain]++
		if n := occurrences[docs[i].Domain]; n > 2 {
			docs[i].Score *= math.Pow(0.9, float64(n-2))
		}
	}
}
