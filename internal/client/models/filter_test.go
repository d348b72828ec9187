package models

import (
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	for _, in := range []string{"newest", "OLDEST", " alphabetical "} {
		_, err := ParseSortKey(in)
		require.NoError(t, err, in)
	}

	k, err := ParseSortKey("Oldest")
	require.NoError(t, err)
	assert.Equal(t, SortOldest, k)

	_, err = ParseSortKey("random")
	require.ErrorIs(t, err, common.ErrInvalidSortKey)
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, "", f.SearchText)
	assert.Empty(t, f.SelectedTags)
	assert.NotNil(t, f.SelectedTags)
	assert.Equal(t, SortNewest, f.SortBy)
}

func TestFilterUpdate_Apply(t *testing.T) {
	base := FilterSpec{SearchText: "code", SelectedTags: []string{"a"}, SortBy: SortOldest}

	t.Run("empty update keeps everything", func(t *testing.T) {
		assert.Equal(t, base, FilterUpdate{}.Apply(base))
	})

	t.Run("search only", func(t *testing.T) {
		got := FilterUpdate{SearchText: ptr("")}.Apply(base)
		assert.Equal(t, "", got.SearchText)
		assert.Equal(t, []string{"a"}, got.SelectedTags)
		assert.Equal(t, SortOldest, got.SortBy)
	})

	t.Run("tags and sort", func(t *testing.T) {
		sort := SortAlphabetical
		got := FilterUpdate{SelectedTags: &[]string{"x", "y"}, SortBy: &sort}.Apply(base)
		assert.Equal(t, "code", got.SearchText)
		assert.Equal(t, []string{"x", "y"}, got.SelectedTags)
		assert.Equal(t, SortAlphabetical, got.SortBy)
	})

	t.Run("nil tags slice becomes empty", func(t *testing.T) {
		var none []string
		got := FilterUpdate{SelectedTags: &none}.Apply(base)
		assert.NotNil(t, got.SelectedTags)
		assert.Empty(t, got.SelectedTags)
	})
}

func TestFilterSpec_CloneIsIndependent(t *testing.T) {
	f := FilterSpec{SelectedTags: []string{"a"}}
	c := f.Clone()
	c.SelectedTags[0] = "b"
	assert.Equal(t, "a", f.SelectedTags[0])
	assert.True(t, f.IsSelected("a"))
	assert.False(t, f.IsSelected("b"))
}
