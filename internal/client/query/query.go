// Package query turns the full record set and a filter spec into the ordered
// list the user sees. Everything here is pure: no I/O, no caching, inputs are
// never modified, and the whole result is recomputed on every call.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply filters records with Matches and stable-sorts the survivors by
// spec.SortBy. The returned slice is freshly allocated.
func Apply(records []models.Prompt, spec models.FilterSpec) []models.Prompt {
	needle := strings.ToLower(spec.SearchText)

	out := make([]models.Prompt, 0, len(records))
	for _, p := range records {
		if matches(p, needle, spec.SelectedTags) {
			out = append(out, p.Clone())
		}
	}
	Sort(out, spec.SortBy)
	return out
}

// Matches reports whether p is visible under spec: the search text (if any)
// must appear case-insensitively in the title, description or text, and the
// record must carry at least one of the selected tags (if any).
func Matches(p models.Prompt, spec models.FilterSpec) bool {
	return matches(p, strings.ToLower(spec.SearchText), spec.SelectedTags)
}

func matches(p models.Prompt, needle string, tags []string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(p.Title), needle) &&
		!strings.Contains(strings.ToLower(p.Description), needle) &&
		!strings.Contains(strings.ToLower(p.Text), needle) {
		return false
	}
	if len(tags) > 0 && !slices.ContainsFunc(tags, p.HasTag) {
		return false
	}
	return true
}

// Sort orders records in place. The sort is stable, so records with equal
// keys keep their relative order. Unknown keys leave the order untouched.
func Sort(records []models.Prompt, key models.SortKey) {
	switch key {
	case models.SortNewest:
		slices.SortStableFunc(records, func(a, b models.Prompt) int {
			return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
		})
	case models.SortOldest:
		slices.SortStableFunc(records, func(a, b models.Prompt) int {
			return cmp.Compare(a.UpdatedAt, b.UpdatedAt)
		})
	case models.SortAlphabetical:
		// Collators keep internal buffers, so each sort gets its own.
		c := collate.New(language.English)
		slices.SortStableFunc(records, func(a, b models.Prompt) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// TagUniverse returns the sorted set of distinct tags across records.
func TagUniverse(records []models.Prompt) []string {
	seen := make(map[string]struct{})
	for _, p := range records {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
