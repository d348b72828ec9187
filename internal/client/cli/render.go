package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
)

const ansiReset = "\x1b[0m"

// tagPalette holds the foreground colours tags are drawn in.
var tagPalette = [...]string{
	"\x1b[31m", // red
	"\x1b[32m", // green
	"\x1b[33m", // yellow
	"\x1b[34m", // blue
	"\x1b[35m", // magenta
	"\x1b[36m", // cyan
	"\x1b[91m", // bright red
	"\x1b[92m", // bright green
	"\x1b[94m", // bright blue
	"\x1b[95m", // bright magenta
}

// TagColor picks a stable palette colour for a tag label. The hash runs over
// UTF-16 code units. Only the shifted term is cut to 32 bits; the running sum
// is kept in 64 bits.
func TagColor(label string) string {
	var h int64
	for _, c := range utf16.Encode([]rune(label)) {
		h = int64(c) + (int64(int32(h)<<5) - h)
	}
	n := h
	if n < 0 {
		n = -n
	}
	return tagPalette[n%int64(len(tagPalette))]
}

type renderer struct {
	w     io.Writer
	color bool
}

func (r renderer) tag(t string) string {
	if !r.color {
		return "#" + t
	}
	return TagColor(t) + "#" + t + ansiReset
}

func (r renderer) tags(ts []string) string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, r.tag(t))
	}
	return strings.Join(out, " ")
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

// list prints one line per record and a footer with the counts.
func (r renderer) list(visible []models.Prompt, total int) {
	for _, p := range visible {
		fmt.Fprintf(r.w, "%s  %-32s  %s  %s\n", p.ID, p.Title, formatMillis(p.UpdatedAt), r.tags(p.Tags))
	}
	fmt.Fprintf(r.w, "%d of %d prompts\n", len(visible), total)
}

// detail prints every field of p.
func (r renderer) detail(p models.Prompt) {
	fmt.Fprintf(r.w, "ID:          %s\n", p.ID)
	fmt.Fprintf(r.w, "Title:       %s\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(r.w, "Description: %s\n", p.Description)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(r.w, "Tags:        %s\n", r.tags(p.Tags))
	}
	fmt.Fprintf(r.w, "Created:     %s\n", formatMillis(p.CreatedAt))
	fmt.Fprintf(r.w, "Updated:     %s\n", formatMillis(p.UpdatedAt))
	fmt.Fprintf(r.w, "\n%s\n", p.Text)
	if p.Comments != "" {
		fmt.Fprintf(r.w, "\nComments:\n%s\n", p.Comments)
	}
}

// tagUniverse prints all tags, marking the selected ones.
func (r renderer) tagUniverse(all []string, f models.FilterSpec) {
	if len(all) == 0 {
		fmt.Fprintln(r.w, "No tags yet.")
		return
	}
	for _, t := range all {
		mark := " "
		if f.IsSelected(t) {
			mark = "*"
		}
		fmt.Fprintf(r.w, "%s %s\n", mark, r.tag(t))
	}
}
