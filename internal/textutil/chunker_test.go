package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWords_SingleChunkWhenUnderLimit(t *testing.T) {
	t.Parallel()

	text := "  one two three  "
	chunks := ChunkWords(text, 10, 3)

	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three", chunks[0])
}

func TestChunkWords_OverlapStepping(t *testing.T) {
	t.Parallel()

	words := make([]string, 25)
	for i := range words {
		words[i] = "w" + string(rune('a'+i))
	}
	text := strings.Join(words, " ")

	chunks := ChunkWords(text, 10, 3)
	require.Len(t, chunks, 4)

	starts := []int{0, 7, 14, 21}
	ends := []int{10, 17, 24, 25}
	for i, chunk := range chunks {
		expected := strings.Join(words[starts[i]:ends[i]], " ")
		assert.Equal(t, expected, chunk)
	}
}

func TestChunkWords_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ChunkWords("   ", 10, 3))
	assert.Nil(t, ChunkWords("", 10, 3))
}
