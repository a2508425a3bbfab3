package services

import "sort"

// DefaultRelatedJobs is the default K for every related-jobs path.
const DefaultRelatedJobs = 3

// topKIndices returns up to k corpus positions ranked by descending score.
// Excluded positions never appear regardless of their score; the query
// position must always be in the exclusion set since self-similarity is the
// row maximum by construction. Ties keep corpus order (stable sort), which
// makes rankings deterministic.
func topKIndices(scores []float64, exclude map[int]bool, k int) []int {
	if k <= 0 {
		k = DefaultRelatedJobs
	}

	candidates := make([]int, 0, len(scores))
	for i := range scores {
		if exclude[i] {
			continue
		}
		candidates = append(candidates, i)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i]] > scores[candidates[j]]
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
