package prompts

import (
	"context"
	"sort"
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises behaviour every Repository must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	sample := func(id, title string) *models.Prompt {
		return &models.Prompt{
			ID: id, Title: title, Description: "desc " + id, Text: "text " + id,
			Comments: "c", Tags: []string{"a", "b"}, CreatedAt: 100, UpdatedAt: 200,
		}
	}

	t.Run("insert then get", func(t *testing.T) {
		r := newRepo(t)
		want := sample("id1", "First")
		require.NoError(t, r.Insert(ctx, want))

		got, err := r.GetByID(ctx, "id1")
		require.NoError(t, err)
		if diff := cmp.Diff(*want, *got); diff != "" {
			t.Fatalf("GetByID mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("insert duplicate", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Insert(ctx, sample("dup", "One")))

		err := r.Insert(ctx, sample("dup", "Two"))
		require.ErrorIs(t, err, common.ErrDuplicateKey)

		got, err := r.GetByID(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "One", got.Title, "failed insert must not overwrite")
	})

	t.Run("get missing", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.GetByID(ctx, "nope")
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("upsert inserts and replaces", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Upsert(ctx, sample("u", "Before")))

		changed := sample("u", "After")
		changed.Tags = []string{"z"}
		changed.UpdatedAt = 300
		require.NoError(t, r.Upsert(ctx, changed))

		n, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := r.GetByID(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, []string{"z"}, got.Tags)
		assert.Equal(t, int64(300), got.UpdatedAt)
	})

	t.Run("delete present and absent", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Insert(ctx, sample("x", "X")))

		require.NoError(t, r.DeleteByID(ctx, "x"))
		require.NoError(t, r.DeleteByID(ctx, "x"), "second delete is a no-op")

		_, err := r.GetByID(ctx, "x")
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("get all and count", func(t *testing.T) {
		r := newRepo(t)
		all, err := r.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		for _, id := range []string{"b", "a", "c"} {
			require.NoError(t, r.Insert(ctx, sample(id, id)))
		}

		all, err = r.GetAll(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(all))
		for _, p := range all {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)
		assert.Equal(t, []string{"a", "b", "c"}, ids)

		n, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("nil tags read back empty", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Insert(ctx, &models.Prompt{ID: "n"}))

		got, err := r.GetByID(ctx, "n")
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})
}
