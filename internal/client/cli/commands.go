package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
)

func (a *App) render() renderer {
	return renderer{w: a.out, color: a.color}
}

// report prints a user-facing error line and passes err through.
func (a *App) report(err error) error {
	fmt.Fprintf(a.out, "Error: %s\n", err)
	return err
}

// List prints the prompts matching the current filter.
func (a *App) List(ctx context.Context) error {
	st := a.catalog.Snapshot()
	if st.Loading {
		fmt.Fprintln(a.out, "Loading...")
	}
	a.render().list(a.catalog.Visible(), len(st.Records))
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	p, ok := a.catalog.Get(id)
	if !ok {
		return a.report(fmt.Errorf("%w: %s", common.ErrNotFound, id))
	}
	a.render().detail(p)
	return nil
}

// Add asks for every field of a new prompt and creates it. Title and text
// are required.
func (a *App) Add(ctx context.Context) error {
	d, err := a.inputDraft()
	if err != nil {
		return a.report(err)
	}
	if err := models.ValidateDraft(d); err != nil {
		return a.report(err)
	}

	id, err := a.catalog.Create(ctx, d)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Created %s\n", id)
	return nil
}

func (a *App) inputDraft() (models.Draft, error) {
	var d models.Draft
	var err error

	if d.Title, err = GetSimpleText(a.in, "Title", a.out); err != nil {
		return d, err
	}
	if d.Description, err = GetSimpleText(a.in, "Description (optional)", a.out); err != nil {
		return d, err
	}
	tags, err := GetSimpleText(a.in, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return d, err
	}
	d.Tags = models.ParseTags(tags)
	if d.Text, err = GetMultiline(a.in, "Prompt text", a.out); err != nil {
		return d, err
	}
	if d.Comments, err = GetMultiline(a.in, "Comments (optional)", a.out); err != nil {
		return d, err
	}
	return d, nil
}

// Edit walks through the fields of an existing prompt. An empty answer keeps
// the current value; "-" clears an optional field.
func (a *App) Edit(ctx context.Context, id string) error {
	cur, ok := a.catalog.Get(id)
	if !ok {
		return a.report(fmt.Errorf("%w: %s", common.ErrNotFound, id))
	}

	patch, err := a.inputPatch(cur)
	if err != nil {
		return a.report(err)
	}

	merged := patch.Apply(cur)
	if err := models.ValidateDraft(models.Draft{Title: merged.Title, Text: merged.Text}); err != nil {
		return a.report(err)
	}

	ok, err = a.catalog.Edit(ctx, id, patch)
	if err != nil {
		return a.report(err)
	}
	if !ok {
		return a.report(fmt.Errorf("%w: %s", common.ErrNotFound, id))
	}
	fmt.Fprintf(a.out, "Updated %s\n", id)
	return nil
}

func (a *App) inputPatch(cur models.Prompt) (models.Patch, error) {
	var patch models.Patch

	ask := func(label, current string, optional bool) (*string, error) {
		v, err := GetSimpleText(a.in, fmt.Sprintf("%s [%s]", label, current), a.out)
		if err != nil || v == "" {
			return nil, err
		}
		if optional && v == "-" {
			v = ""
		}
		return &v, nil
	}

	var err error
	if patch.Title, err = ask("Title", cur.Title, false); err != nil {
		return patch, err
	}
	if patch.Description, err = ask("Description", cur.Description, true); err != nil {
		return patch, err
	}
	tags, err := ask("Tags", strings.Join(cur.Tags, ", "), true)
	if err != nil {
		return patch, err
	}
	if tags != nil {
		parsed := models.ParseTags(*tags)
		patch.Tags = &parsed
	}

	text, err := GetMultiline(a.in, "Prompt text (empty keeps current)", a.out)
	if err != nil {
		return patch, err
	}
	if text != "" {
		patch.Text = &text
	}

	comments, err := GetMultiline(a.in, "Comments (empty keeps current, - clears)", a.out)
	if err != nil {
		return patch, err
	}
	switch comments {
	case "":
	case "-":
		empty := ""
		patch.Comments = &empty
	default:
		patch.Comments = &comments
	}

	return patch, nil
}

// Delete removes a prompt after the user types "yes".
func (a *App) Delete(ctx context.Context, id string) error {
	p, ok := a.catalog.Get(id)
	if !ok {
		return a.report(fmt.Errorf("%w: %s", common.ErrNotFound, id))
	}

	yes, err := Confirm(a.in, fmt.Sprintf("Delete %q?", p.Title), a.out)
	if err != nil {
		return a.report(err)
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.catalog.Remove(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

func (a *App) Search(ctx context.Context, text string) error {
	a.catalog.SetSearchText(text)
	return a.List(ctx)
}

// ToggleTag selects or deselects a tag. Tags are stored normalized, so the
// argument is normalized the same way.
func (a *App) ToggleTag(ctx context.Context, tag string) error {
	norm := models.NormalizeTags([]string{tag})
	if len(norm) == 0 {
		return a.report(fmt.Errorf("%w: empty tag", common.ErrValidation))
	}
	a.catalog.ToggleTag(norm[0])
	return a.List(ctx)
}

func (a *App) Tags(ctx context.Context) error {
	st := a.catalog.Snapshot()
	a.render().tagUniverse(st.Tags, st.Filter)
	return nil
}

func (a *App) SortBy(ctx context.Context, key string) error {
	k, err := models.ParseSortKey(key)
	if err != nil {
		return a.report(err)
	}
	a.catalog.SetSortKey(k)
	return a.List(ctx)
}

func (a *App) ClearFilter(ctx context.Context) error {
	a.catalog.ClearFilter()
	return a.List(ctx)
}

// Export writes a backup into dir, or the configured export directory when
// dir is empty.
func (a *App) Export(ctx context.Context, dir string) error {
	if dir == "" {
		dir = a.config.ExportDir
	}
	path, err := a.transfer.ExportToDir(ctx, dir, a.now())
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

// Import loads a backup file and reloads the catalog. A malformed file may
// leave earlier records of the file applied.
func (a *App) Import(ctx context.Context, path string) error {
	ok, err := a.transfer.ImportFile(ctx, path)
	if err != nil {
		if errors.Is(err, common.ErrNotJSONFile) {
			fmt.Fprintln(a.out, "Please choose a .json file.")
		}
		return a.report(err)
	}

	if loadErr := a.catalog.Load(ctx); loadErr != nil {
		_ = a.report(loadErr)
	}

	if !ok {
		fmt.Fprintln(a.out, "Import failed: the file is not a valid prompt backup.")
		return common.ErrMalformedPayload
	}
	fmt.Fprintln(a.out, "Import complete.")
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	if err := a.catalog.Load(ctx); err != nil {
		return a.report(err)
	}
	return a.List(ctx)
}
