// Package storage is the record store: durable CRUD over the prompt table,
// schema setup and one-time seeding of sample prompts.
//
// A Store is constructed explicitly and handed to its users; there is no
// package-level handle. Any failure coming from the backing database is
// reported wrapped with common.ErrStorage. common.ErrNotFound and
// common.ErrDuplicateKey pass through unchanged. Nothing is retried.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/promptkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/client/repositories/prompts"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/dbx"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	repo   prompts.Repository
	logger logging.Logger
}

const dsnPragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// DSN turns a database file path into a modernc.org/sqlite URI with a busy
// timeout and foreign keys on. The path is percent-encoded, so names holding
// '#', '?' or '%' open the file they name. ":memory:" and values already
// starting with "file:" are passed through.
func DSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	u := &url.URL{Scheme: "file", OmitHost: true, Path: path, RawQuery: dsnPragmas}
	return u.String()
}

// Open opens (creating if needed) the SQLite database at path. Call
// Initialize before using the store.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", common.ErrStorage, err)
	}
	// one writer at a time; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", common.ErrStorage, err)
	}
	return New(db, logger), nil
}

// New wraps an already opened database.
func New(db *sql.DB, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		repo:   prompts.NewSQLiteRepository(db),
		logger: logger.With("component", "storage"),
	}
}

// NewWithRepository builds a store over any Repository. There is no schema
// to migrate, so Initialize only seeds.
func NewWithRepository(repo prompts.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "storage")}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Initialize creates the schema and seeds the sample prompts when the table
// is empty. It is safe to call repeatedly.
//
// The emptiness check and the seed insert are not one atomic step: two
// processes initializing the same fresh file at the same time could both
// seed, and the second would fail on duplicate ids. A single client never
// does that, so the check is left as is.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db != nil {
		if err := s.migrate(ctx); err != nil {
			return err
		}
	}

	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := SeedPrompts()
	err = s.withTx(ctx, func(ctx context.Context, repo prompts.Repository) error {
		for i := range seeds {
			if err := repo.Insert(ctx, &seeds[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.classify("seed prompts", err)
	}

	s.logger.Info(ctx, "seeded sample prompts", "count", len(seeds))
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("%w: migrations: %w", common.ErrStorage, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%w: apply migrations: %w", common.ErrStorage, err)
	}
	for _, r := range results {
		s.logger.Debug(ctx, "applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, repo prompts.Repository) error) error {
	if s.db == nil {
		return fn(ctx, s.repo)
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, prompts.NewSQLiteRepository(tx))
	})
}

// classify wraps err with ErrStorage unless it is one of the expected,
// recoverable conditions.
func (s *Store) classify(op string, err error) error {
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrDuplicateKey) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", common.ErrStorage, op, err)
}

// ListAll returns every record in unspecified order.
func (s *Store) ListAll(ctx context.Context) ([]models.Prompt, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, s.classify("list prompts", err)
	}
	return all, nil
}

// Get returns the record or an error matching common.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (models.Prompt, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Prompt{}, s.classify("get prompt", err)
	}
	return *p, nil
}

// Add inserts a new record; common.ErrDuplicateKey if the id is taken.
func (s *Store) Add(ctx context.Context, p models.Prompt) error {
	if err := s.repo.Insert(ctx, &p); err != nil {
		return s.classify("add prompt", err)
	}
	return nil
}

// Put inserts or replaces the record with the same id.
func (s *Store) Put(ctx context.Context, p models.Prompt) error {
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return s.classify("put prompt", err)
	}
	return nil
}

// Remove deletes by id; a missing id is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.classify("remove prompt", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.classify("count prompts", err)
	}
	return n, nil
}
