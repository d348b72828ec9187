package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
)

// SortKey selects the ordering of the visible list.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortAlphabetical}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q (want newest, oldest or alphabetical)", common.ErrInvalidSortKey, s)
}

// FilterSpec is the transient search/tag/sort state driving the visible list.
// SelectedTags has any-of semantics.
type FilterSpec struct {
	SearchText   string
	SelectedTags []string
	SortBy       SortKey
}

func DefaultFilter() FilterSpec {
	return FilterSpec{SelectedTags: []string{}, SortBy: SortNewest}
}

func (f FilterSpec) Clone() FilterSpec {
	f.SelectedTags = slices.Clone(f.SelectedTags)
	if f.SelectedTags == nil {
		f.SelectedTags = []string{}
	}
	return f
}

// IsSelected reports whether tag is part of the tag filter.
func (f FilterSpec) IsSelected(tag string) bool {
	return slices.Contains(f.SelectedTags, tag)
}

// FilterUpdate is a partial FilterSpec; nil fields keep their current value.
type FilterUpdate struct {
	SearchText   *string
	SelectedTags *[]string
	SortBy       *SortKey
}

func (u FilterUpdate) Apply(f FilterSpec) FilterSpec {
	out := f.Clone()
	if u.SearchText != nil {
		out.SearchText = *u.SearchText
	}
	if u.SelectedTags != nil {
		out.SelectedTags = slices.Clone(*u.SelectedTags)
		if out.SelectedTags == nil {
			out.SelectedTags = []string{}
		}
	}
	if u.SortBy != nil {
		out.SortBy = *u.SortBy
	}
	return out
}
