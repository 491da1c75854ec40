package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("Hello, World! Use foo.bar/baz:v1.2 and C++.")
	assert.Equal(t, []string{"hello", "world", "use", "foo.bar/baz:v1.2", "and", "c++."}, tokens)
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	in := "line one   \n\n\n\nline two  \nline three\n\n\nline four"
	out := NormalizeWhitespace(in)
	assert.Equal(t, "line one\n\nline two\nline three\n\nline four", out)
}
