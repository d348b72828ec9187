package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/client/repositories/prompts"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "prompts.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(ctx))
	return s
}

func titles(ps []models.Prompt) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	sort.Strings(out)
	return out
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:", DSN(":memory:"))
	assert.Equal(t, "file:x.db?mode=ro", DSN("file:x.db?mode=ro"))
	assert.Equal(t, "file:/tmp/p.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", DSN("/tmp/p.db"))
	assert.Equal(t, "file:prompts.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", DSN("prompts.db"))
	assert.Equal(t, "file:my%231.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", DSN("my#1.db"))
	assert.Equal(t, "file:/data/q%3Fx.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", DSN("/data/q?x.db"))
	assert.Equal(t, "file:pct%2541.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", DSN("pct%41.db"))
}

func TestOpen_OddFileNamesOpenTheNamedFile(t *testing.T) {
	for _, name := range []string{"my#1.db", "q?x.db", "pct%41.db", "with space.db"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			s, err := Open(ctx, path, logging.Discard())
			require.NoError(t, err)
			require.NoError(t, s.Initialize(ctx))
			require.NoError(t, s.Close())

			_, err = os.Stat(path)
			require.NoError(t, err, "database must be created under its own name")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.True(t, strings.HasPrefix(e.Name(), name), "unexpected file %q", e.Name())
			}

			s, err = Open(ctx, path, logging.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, n, "reopening finds the seeded rows")

			var timeout int
			require.NoError(t, s.db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
			assert.Equal(t, 5000, timeout, "pragmas survive the escaping")
		})
	}
}

func TestInitialize_SeedsEmptyTable(t *testing.T) {
	s := openStore(t)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 4)

	want := []string{
		"Code Refactoring Assistant",
		"Creative Story Writer",
		"Learning Concept Explainer",
		"Recipe Creator",
	}
	assert.Equal(t, want, titles(all))

	got := SeedTitles()
	sort.Strings(got)
	assert.Equal(t, want, got)
}

func TestInitialize_IsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestInitialize_DoesNotReseedAfterDeletes(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	for _, p := range all[1:] {
		require.NoError(t, s.Remove(ctx, p.ID))
	}
	require.NoError(t, s.Initialize(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a non-empty table is never reseeded")
}

func TestInitialize_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prompts.db")

	s1, err := Open(ctx, path, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s1.Initialize(ctx))
	require.NoError(t, s1.Add(ctx, models.Prompt{ID: "mine", Title: "Mine", Text: "x"}))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, path, logging.Discard())
	require.NoError(t, err)
	defer s2.Close()
	require.NoError(t, s2.Initialize(ctx))

	n, err := s2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	got, err := s2.Get(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestStore_CRUD(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	p := models.Prompt{
		ID: "p1", Title: "T", Text: "X", Tags: []string{"a", "b"},
		CreatedAt: 1, UpdatedAt: 1,
	}
	require.NoError(t, s.Add(ctx, p))

	err := s.Add(ctx, p)
	require.ErrorIs(t, err, common.ErrDuplicateKey)
	require.NotErrorIs(t, err, common.ErrStorage)

	p.Title = "T2"
	p.UpdatedAt = 2
	require.NoError(t, s.Put(ctx, p))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, s.Remove(ctx, "p1"))
	require.NoError(t, s.Remove(ctx, "p1"))

	_, err = s.Get(ctx, "p1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_FailuresAreStorageErrors(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, err := s.ListAll(ctx)
	require.ErrorIs(t, err, common.ErrStorage)

	err = s.Put(ctx, models.Prompt{ID: "x"})
	require.ErrorIs(t, err, common.ErrStorage)

	err = s.Remove(ctx, "x")
	require.ErrorIs(t, err, common.ErrStorage)

	err = s.Initialize(ctx)
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestNewWithRepository_SeedsMemory(t *testing.T) {
	ctx := context.Background()
	s := NewWithRepository(prompts.NewMemoryRepository(), logging.Discard())

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	require.NoError(t, s.Close())
}

func TestSeedPrompts_Invariants(t *testing.T) {
	seeds := SeedPrompts()
	require.Len(t, seeds, 4)
	assert.Equal(t, []string{
		"Creative Story Writer",
		"Code Refactoring Assistant",
		"Recipe Creator",
		"Learning Concept Explainer",
	}, SeedTitles())
	assert.Equal(t, []string{"programming", "coding", "refactoring"}, seeds[1].Tags)
	assert.Equal(t, SeedPrompts(), seeds, "seed data is fixed")

	ids := map[string]bool{}
	for _, p := range seeds {
		assert.False(t, ids[p.ID], "duplicate seed id %s", p.ID)
		ids[p.ID] = true
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Text)
		assert.LessOrEqual(t, p.CreatedAt, p.UpdatedAt)
		assert.Equal(t, models.NormalizeTags(p.Tags), p.Tags)
	}
}
