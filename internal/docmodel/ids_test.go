package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionRef_DeterministicAndLength(t *testing.T) {
	t.Parallel()

	a := SectionRef("go", "guide.md", "#intro", []string{"Intro"})
	b := SectionRef("go", "guide.md", "#intro", []string{"Intro"})
	c := SectionRef("go", "guide.md", "#other", []string{"Other"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, len(a) > len("go:"))
	assert.Equal(t, "go:", a[:3])
}

func TestDocRef_VariesByChunkIndex(t *testing.T) {
	t.Parallel()

	section := SectionRef("go", "guide.md", "#intro", []string{"Intro"})

	ref0 := DocRef("go", section, 0)
	ref1 := DocRef("go", section, 1)

	assert.NotEqual(t, ref0, ref1)
	assert.Equal(t, "go:", ref0[:3])
}

func TestAnchorFromHeadingID_Deterministic(t *testing.T) {
	t.Parallel()

	a := AnchorFromHeadingID("guide.md", []string{"Intro", "Sub"})
	b := AnchorFromHeadingID("guide.md", []string{"Intro", "Sub"})

	assert.Equal(t, a, b)
	assert.Contains(t, a, "#sec-")
}
