package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/docsearch/internal/registry"
)

func docsets() []registry.Docset {
	return []registry.Docset{
		{DocsetID: "go", Keywords: []string{"goroutine", "channel"}, Tags: []string{"lang"}},
		{DocsetID: "react", Keywords: []string{"hook", "jsx"}, Tags: []string{"frontend"}},
		{DocsetID: "postgres", Keywords: []string{"sql"}, Tags: []string{"database"}},
	}
}

func TestRoute_SourceHintDominates(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "how do I use hooks", "go", Context{}, 3)

	require.NotEmpty(t, selections)
	assert.Equal(t, "go", selections[0].DocsetID)
	assert.Contains(t, selections[0].Reason, "source_hint")
}

func TestRoute_KeywordMatchSelectsDocset(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "how do goroutines and channels work", "", Context{}, 3)

	require.NotEmpty(t, selections)
	assert.Equal(t, "go", selections[0].DocsetID)
	assert.Contains(t, selections[0].Reason, "keywords:")
}

func TestRoute_KeywordAndTagMatchSelectsDocset(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "frontend hook patterns", "", Context{}, 3)

	require.NotEmpty(t, selections)
	assert.Equal(t, "react", selections[0].DocsetID)
}

func TestRoute_DependencyMatch(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "what does this library do", "", Context{
		Dependencies: []string{"github.com/lib/pq sql driver"},
	}, 3)

	require.NotEmpty(t, selections)
	assert.Equal(t, "postgres", selections[0].DocsetID)
	assert.Contains(t, selections[0].Reason, "deps:")
}

func TestRoute_FallsBackToRegistryOrderWhenNothingScores(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "completely unrelated query text", "", Context{}, 2)

	require.Len(t, selections, 2)
	assert.Equal(t, "go", selections[0].DocsetID)
	assert.Equal(t, "fallback", selections[0].Reason)
	assert.Equal(t, "react", selections[1].DocsetID)
}

func TestRoute_TruncatesToMaxK(t *testing.T) {
	t.Parallel()

	selections := Route(docsets(), "goroutine hook sql", "", Context{}, 2)
	assert.Len(t, selections, 2)
}
