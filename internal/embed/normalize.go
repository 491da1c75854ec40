package embed

import "math"

// normalizeRows L2-normalizes each row of a matrix in place. A zero vector
// is left unchanged rather than dividing by zero.
func normalizeRows(rows [][]float32) {
	for i, row := range rows {
		var sumSq float64
		for _, v := range row {
			sumSq += float64(v) * float64(v)
		}
		if sumSq == 0 {
			continue
		}
		norm := float32(math.Sqrt(sumSq))
		for j, v := range row {
			rows[i][j] = v / norm
		}
	}
}
