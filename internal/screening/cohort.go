package screening

import (
	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// Evaluate produces one CohortResult per distinct candidate subject.
// HasCode is true iff the subject appears in diagnoses with a true value;
// subjects absent from the lookup default to false.
//
// Candidates keep their first-seen order; duplicates are dropped. An empty
// candidate list yields an empty (non-nil) result slice.
func Evaluate(candidates []int64, diagnoses map[int64]bool) []types.CohortResult {
	results := make([]types.CohortResult, 0, len(candidates))
	seen := make(map[int64]struct{}, len(candidates))
	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		results = append(results, types.CohortResult{
			SubjectID: id,
			HasCode:   diagnoses[id],
		})
	}
	return results
}
