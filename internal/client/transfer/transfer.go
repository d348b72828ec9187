// Package transfer moves the whole prompt catalog in and out of the
// JSON backup format.
package transfer

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/common"
	"github.com/dmitrijs2005/promptkeeper/internal/filex"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/natefinch/atomic"
)

// Store is the part of the record store transfer needs.
type Store interface {
	ListAll(ctx context.Context) ([]models.Prompt, error)
	Put(ctx context.Context, p models.Prompt) error
}

type Service struct {
	store  Store
	logger logging.Logger
}

func New(store Store, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger.With("component", "transfer")}
}

// Export renders every stored record, ordered by id, as an indented JSON
// array. An empty store renders as [].
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export prompts: %w", err)
	}
	if records == nil {
		records = []models.Prompt{}
	}
	for i := range records {
		if records[i].Tags == nil {
			records[i].Tags = []string{}
		}
	}

	slices.SortFunc(records, func(a, b models.Prompt) int {
		return cmp.Compare(a.ID, b.ID)
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompts: %w", err)
	}

	s.logger.Info(ctx, "prompts exported", "count", len(records))
	return data, nil
}

// Import upserts every element of a JSON array, in order. It stops at the
// first element that cannot be decoded or stored and returns false; records
// written before that point stay. Failures are logged, not returned.
func (s *Service) Import(ctx context.Context, data []byte) bool {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error(ctx, "import failed", "error", fmt.Errorf("%w: %w", common.ErrMalformedPayload, err))
		return false
	}
	if raw == nil {
		s.logger.Error(ctx, "import failed", "error", fmt.Errorf("%w: expected a JSON array", common.ErrMalformedPayload))
		return false
	}

	for i, el := range raw {
		p, err := decodeRecord(el)
		if err != nil {
			s.logger.Error(ctx, "import failed", "index", i, "error", err)
			return false
		}
		if err := s.store.Put(ctx, p); err != nil {
			s.logger.Error(ctx, "import failed", "index", i, "id", p.ID, "error", err)
			return false
		}
	}

	s.logger.Info(ctx, "prompts imported", "count", len(raw))
	return true
}

func decodeRecord(el json.RawMessage) (models.Prompt, error) {
	var p models.Prompt

	trimmed := bytes.TrimSpace(el)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return p, fmt.Errorf("%w: element is not an object", common.ErrMalformedPayload)
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return p, fmt.Errorf("%w: %w", common.ErrMalformedPayload, err)
	}
	if p.ID == "" {
		return p, fmt.Errorf("%w: element has no id", common.ErrMalformedPayload)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

// ExportFileName is the backup file name for the UTC date of t.
func ExportFileName(t time.Time) string {
	return "ai-prompts-" + t.UTC().Format(time.DateOnly) + ".json"
}

// ExportToDir writes the export into dir, creating it if needed, and returns
// the file path. The file is replaced atomically.
func (s *Service) ExportToDir(ctx context.Context, dir string, now time.Time) (string, error) {
	data, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to prepare export dir: %w", err)
	}

	path := filepath.Join(dir, ExportFileName(now))
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Info(ctx, "export written", "path", path)
	return path, nil
}

// ImportFile reads a .json backup and feeds it to Import.
func (s *Service) ImportFile(ctx context.Context, path string) (bool, error) {
	if !filex.HasExt(path, ".json") {
		return false, fmt.Errorf("%w: %s", common.ErrNotJSONFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return s.Import(ctx, data), nil
}
