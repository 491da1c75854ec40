package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScores_CosineSimilarityOnNormalizedRows(t *testing.T) {
	t.Parallel()

	idx, err := Build([][]float32{
		{1, 0},
		{0, 1},
		{0.70710677, 0.70710677},
	})
	require.NoError(t, err)

	scores := idx.Scores([]float32{1, 0})

	assert.InDelta(t, 1.0, scores[0], 1e-6)
	assert.InDelta(t, 0.0, scores[1], 1e-6)
	assert.InDelta(t, 0.70710677, scores[2], 1e-6)
}

func TestRow_ReturnsStoredVector(t *testing.T) {
	t.Parallel()

	idx, err := Build([][]float32{{1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3}, idx.Row(0))
	assert.Equal(t, 1, idx.Len())
}

func TestScores_EmptyIndexReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	idx, err := Build(nil)
	require.NoError(t, err)

	scores := idx.Scores([]float32{1, 0})
	assert.Empty(t, scores)
	assert.Equal(t, 0, idx.Len())
}
