// Package models defines the prompt record, its edit payloads and the
// transient filter state used by the promptkeeper client.
package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/common"
)

// Prompt is the only persisted record. JSON names match the transfer file
// format; timestamps are milliseconds since the Unix epoch.
type Prompt struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Text        string   `json:"text"`
	Comments    string   `json:"comments"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can hand records out without sharing
// the Tags backing array.
func (p Prompt) Clone() Prompt {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// HasTag reports whether tag is one of the record's tags (exact match).
func (p Prompt) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// Draft carries the user-supplied fields of a new prompt.
type Draft struct {
	Title       string
	Description string
	Text        string
	Comments    string
	Tags        []string
}

// Patch is a partial edit. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Text        *string
	Comments    *string
	Tags        *[]string
}

// Apply merges the patch over p and returns the result. Timestamps and the id
// are never touched here.
func (pt Patch) Apply(p Prompt) Prompt {
	out := p.Clone()
	if pt.Title != nil {
		out.Title = *pt.Title
	}
	if pt.Description != nil {
		out.Description = *pt.Description
	}
	if pt.Text != nil {
		out.Text = *pt.Text
	}
	if pt.Comments != nil {
		out.Comments = *pt.Comments
	}
	if pt.Tags != nil {
		out.Tags = slices.Clone(*pt.Tags)
	}
	return out
}

// NormalizeTags trims and lowercases every tag, drops empty ones and removes
// duplicates keeping the first occurrence. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseTags splits a comma separated list as typed on the command line and
// normalizes it.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// ValidateDraft checks the fields the create and edit forms require.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("%w: prompt text is required", common.ErrValidation)
	}
	return nil
}
