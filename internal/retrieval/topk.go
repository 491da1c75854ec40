package retrieval

import "sort"

// TopKIndices returns the indices of the k highest values in scores, in
// descending-score order with ties broken by ascending index, per
// spec.md section 4.7. When k >= len(scores), all indices are returned.
func TopKIndices(scores []float64, k int) []int {
	n := len(scores)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	sort.Slice(indices, func(i, j int) bool {
		a, b := indices[i], indices[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})

	return indices[:k]
}
