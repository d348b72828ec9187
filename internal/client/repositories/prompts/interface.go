package prompts

import (
	"context"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
)

// Repository describes CRUD and scan operations over prompt records.
type Repository interface {
	// GetAll returns every record. Order is unspecified.
	GetAll(ctx context.Context) ([]models.Prompt, error)

	// GetByID returns the record with the given id or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Prompt, error)

	// Insert adds a new record; it fails with common.ErrDuplicateKey when the
	// id already exists.
	Insert(ctx context.Context, p *models.Prompt) error

	// Upsert inserts the record or replaces the one with the same id.
	Upsert(ctx context.Context, p *models.Prompt) error

	// DeleteByID removes the record. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
