package prompts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/dbx"
)

const selectColumns = `id, title, description, tags, text, comments, created_at, updated_at`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(s scanner) (models.Prompt, error) {
	var (
		p    models.Prompt
		tags string
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &tags, &p.Text, &p.Comments, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Prompt{}, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return models.Prompt{}, fmt.Errorf("corrupt tags for prompt %s: %w", p.ID, err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Prompt, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM prompts`)
	if err != nil {
		return nil, fmt.Errorf("failed to select prompts: %w", err)
	}
	defer rows.Close()

	result := make([]models.Prompt, 0)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompts: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM prompts WHERE id = ?`, id)

	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prompt %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &p, nil
}

// Insert uses ON CONFLICT DO NOTHING and checks the affected row count, which
// keeps duplicate detection independent of driver error codes.
func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO prompts (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		p.ID, p.Title, p.Description, tags, p.Text, p.Comments, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert prompt: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("prompt %s: %w", p.ID, common.ErrDuplicateKey)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO prompts (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			tags = excluded.tags,
			text = excluded.text,
			comments = excluded.comments,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		p.ID, p.Title, p.Description, tags, p.Text, p.Comments, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert prompt: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count prompts: %w", err)
	}
	return n, nil
}
