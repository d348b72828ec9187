// Package prompts provides the client-side persistence layer for prompt
// records.
//
// # Overview
//
// The package defines a Repository interface with keyed lookup, insert,
// upsert, delete and full-table scan over models.Prompt. Two implementations
// are provided:
//
//   - SQLiteRepository  persists rows in the local SQLite "prompts" table
//     through a dbx.DBTX (either *sql.DB or *sql.Tx)
//   - MemoryRepository  a map-backed implementation safe for concurrent use,
//     used by tests and by callers that do not need durability
//
// # Errors
//
// Insert reports common.ErrDuplicateKey when the id is taken and GetByID
// reports common.ErrNotFound for a missing id. Everything else is a driver
// error wrapped with context; the storage package classifies those as
// common.ErrStorage.
//
// Typical Usage
//
//	repo := prompts.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, p)
//	all, _ := repo.GetAll(ctx)
//	one, _ := repo.GetByID(ctx, p.ID)
//	_ = repo.DeleteByID(ctx, p.ID)
package prompts
