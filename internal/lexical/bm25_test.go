package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScores_RanksExactMatchAboveUnrelated(t *testing.T) {
	t.Parallel()

	idx := Build([][]string{
		{"install", "the", "go", "toolchain"},
		{"bananas", "are", "a", "fruit"},
		{"go", "go", "go", "install", "install"},
	})

	scores := idx.Scores([]string{"go", "install"})

	assert.Greater(t, scores[2], scores[0])
	assert.Greater(t, scores[0], scores[1])
	assert.Equal(t, float64(0), scores[1])
}

func TestScores_UnknownTermsContributeNothing(t *testing.T) {
	t.Parallel()

	idx := Build([][]string{{"alpha", "beta"}})
	scores := idx.Scores([]string{"gamma"})

	assert.Equal(t, []float64{0}, scores)
}

func TestScores_EmptyCorpus(t *testing.T) {
	t.Parallel()

	idx := Build(nil)
	assert.Empty(t, idx.Scores([]string{"anything"}))
	assert.Equal(t, 0, idx.Len())
}
