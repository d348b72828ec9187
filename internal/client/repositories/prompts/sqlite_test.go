package prompts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE prompts (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  text TEXT NOT NULL DEFAULT '',
  comments TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL DEFAULT 0,
  updated_at INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func TestSQLiteRepository_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Repository {
		return NewSQLiteRepository(setupDB(t))
	})
}

func TestSQLiteRepository_TagsStoredAsJSON(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Prompt{ID: "a", Title: "A", Tags: []string{"x", "y"}}))
	require.NoError(t, r.Insert(ctx, &models.Prompt{ID: "b", Title: "B"}))

	var tags string
	require.NoError(t, db.QueryRow(`SELECT tags FROM prompts WHERE id = 'a'`).Scan(&tags))
	assert.Equal(t, `["x","y"]`, tags)

	require.NoError(t, db.QueryRow(`SELECT tags FROM prompts WHERE id = 'b'`).Scan(&tags))
	assert.Equal(t, `[]`, tags)
}

func TestSQLiteRepository_CorruptTagsIsError(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO prompts (id, title, tags) VALUES ('bad', 'Bad', 'not-json')`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)

	_, err = r.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt tags")

	_, err = r.GetByID(context.Background(), "bad")
	require.Error(t, err)
}

func TestSQLiteRepository_ClosedDBFails(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	ctx := context.Background()
	_, err := r.GetAll(ctx)
	require.Error(t, err)
	_, err = r.Count(ctx)
	require.Error(t, err)
	require.Error(t, r.Upsert(ctx, &models.Prompt{ID: "x"}))
	require.Error(t, r.DeleteByID(ctx, "x"))
}
