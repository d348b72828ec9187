package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestTagColor(t *testing.T) {
	assert.Equal(t, tagPalette[7], TagColor("a"))  // 97
	assert.Equal(t, tagPalette[5], TagColor("ab")) // 98 + 97*31 = 3105
	assert.Equal(t, tagPalette[0], TagColor(""))

	// labels long enough to leave the 32-bit range
	for label, want := range map[string]int{
		"refactoring":                   0,
		"writing":                       2,
		"programming":                   9,
		"creative":                      3,
		"🙂":                             5,
		strings.Repeat("overflow", 50): 6,
	} {
		assert.Equal(t, tagPalette[want], TagColor(label), label)
	}

	long := strings.Repeat("overflow", 50)
	assert.Equal(t, TagColor(long), TagColor(long))
	for _, label := range []string{long, "writing", "ünïcödé", "🙂"} {
		assert.True(t, slices.Contains(tagPalette[:], TagColor(label)), label)
	}
}

func TestRenderer_Tags(t *testing.T) {
	plain := renderer{}
	assert.Equal(t, "#a #b", plain.tags([]string{"a", "b"}))

	colored := renderer{color: true}
	assert.Equal(t, TagColor("a")+"#a"+ansiReset, colored.tag("a"))
}

func TestRenderer_Detail(t *testing.T) {
	var buf bytes.Buffer
	renderer{w: &buf}.detail(models.Prompt{
		ID:        "id-1",
		Title:     "T",
		Text:      "body",
		CreatedAt: 1704067200000,
		UpdatedAt: 1704067200000,
	})

	out := buf.String()
	assert.Contains(t, out, "Created:     2024-01-01 00:00")
	assert.Contains(t, out, "\nbody\n")
	assert.NotContains(t, out, "Description:")
	assert.NotContains(t, out, "Comments:")
}

func TestRenderer_TagUniverseEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderer{w: &buf}.tagUniverse(nil, models.DefaultFilter())
	assert.Equal(t, "No tags yet.\n", buf.String())
}
