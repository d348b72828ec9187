// Package services contains application services for the prompt catalog client.
package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/client/query"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/google/uuid"
)

// PromptStore is the part of the record store the catalog needs.
// *storage.Store satisfies it.
type PromptStore interface {
	ListAll(ctx context.Context) ([]models.Prompt, error)
	Add(ctx context.Context, p models.Prompt) error
	Put(ctx context.Context, p models.Prompt) error
	Remove(ctx context.Context, id string) error
}

// State is a point-in-time copy of what the catalog exposes.
type State struct {
	Records []models.Prompt
	Tags    []string
	Loading bool
	Filter  models.FilterSpec
}

// CatalogService owns the in-memory snapshot of all prompts, the derived tag
// universe and the current filter, and reloads from the store after every
// mutation.
type CatalogService interface {
	// Load replaces the snapshot with the store contents. On failure the
	// previous snapshot stays.
	Load(ctx context.Context) error
	// Create stores a new prompt and returns its id.
	Create(ctx context.Context, d models.Draft) (string, error)
	// Edit merges patch over the prompt with the given id. It returns false
	// without touching the store when the id is not in the snapshot.
	Edit(ctx context.Context, id string, patch models.Patch) (bool, error)
	// Remove deletes the prompt; a missing id is not an error.
	Remove(ctx context.Context, id string) error

	SetFilter(u models.FilterUpdate)
	SetSearchText(text string)
	SetSortKey(k models.SortKey)
	ToggleTag(tag string)
	ClearFilter()

	// Visible is the filtered and sorted view of the snapshot.
	Visible() []models.Prompt
	Get(id string) (models.Prompt, bool)
	Tags() []string
	Loading() bool
	Filter() models.FilterSpec
	Snapshot() State
	// Subscribe registers fn to receive a snapshot after each state change.
	// The returned func unregisters it.
	Subscribe(fn func(State)) (unsubscribe func())
}

type Option func(*catalogService)

// WithClock overrides time.Now, used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *catalogService) { s.now = now }
}

// WithIDGenerator overrides uuid.NewString for new record ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *catalogService) { s.newID = gen }
}

type catalogService struct {
	store  PromptStore
	logger logging.Logger
	now    func() time.Time
	newID  func() string

	mu       sync.RWMutex
	records  []models.Prompt
	tags     []string
	filter   models.FilterSpec
	inflight int
	// loaded is set once the first Load has finished, successfully or not.
	loaded bool

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

func NewCatalogService(store PromptStore, logger logging.Logger, opts ...Option) CatalogService {
	s := &catalogService{
		store:   store,
		logger:  logger.With("component", "catalog"),
		now:     time.Now,
		newID:   uuid.NewString,
		records: []models.Prompt{},
		tags:    []string{},
		filter:  models.DefaultFilter(),
		subs:    make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *catalogService) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Load may run concurrently with itself; whichever call finishes last
// determines the snapshot.
func (s *catalogService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.inflight++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	records, err := s.store.ListAll(ctx)

	s.mu.Lock()
	s.inflight--
	s.loaded = true
	if err == nil {
		s.records = records
		s.tags = query.TagUniverse(records)
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	if err != nil {
		s.logger.Error(ctx, "error loading prompts", "error", err)
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	s.logger.Debug(ctx, "prompts loaded", "count", len(records), "tags", len(snap.Tags))
	return nil
}

// Create does not validate title or text; that is the caller's job. Tags are
// normalized. If the reload after a successful insert fails, the id is still
// returned together with the load error.
func (s *catalogService) Create(ctx context.Context, d models.Draft) (string, error) {
	now := s.nowMillis()
	p := models.Prompt{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Text:        d.Text,
		Comments:    d.Comments,
		Tags:        models.NormalizeTags(d.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Add(ctx, p); err != nil {
		return "", fmt.Errorf("failed to create prompt: %w", err)
	}
	s.logger.Info(ctx, "prompt created", "id", p.ID)

	return p.ID, s.Load(ctx)
}

func (s *catalogService) Edit(ctx context.Context, id string, patch models.Patch) (bool, error) {
	existing, ok := s.Get(id)
	if !ok {
		s.logger.Debug(ctx, "edit of unknown prompt ignored", "id", id)
		return false, nil
	}

	updated := patch.Apply(existing)
	updated.ID = existing.ID
	updated.Tags = models.NormalizeTags(updated.Tags)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = max(s.nowMillis(), existing.UpdatedAt, existing.CreatedAt)

	if err := s.store.Put(ctx, updated); err != nil {
		return false, fmt.Errorf("failed to update prompt: %w", err)
	}
	s.logger.Info(ctx, "prompt updated", "id", id)

	return true, s.Load(ctx)
}

func (s *catalogService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove prompt: %w", err)
	}
	s.logger.Info(ctx, "prompt removed", "id", id)

	return s.Load(ctx)
}

func (s *catalogService) updateFilter(fn func(f models.FilterSpec) models.FilterSpec) {
	s.mu.Lock()
	s.filter = fn(s.filter.Clone())
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *catalogService) SetFilter(u models.FilterUpdate) {
	s.updateFilter(u.Apply)
}

func (s *catalogService) SetSearchText(text string) {
	s.SetFilter(models.FilterUpdate{SearchText: &text})
}

func (s *catalogService) SetSortKey(k models.SortKey) {
	s.SetFilter(models.FilterUpdate{SortBy: &k})
}

// ToggleTag adds tag to the selection if absent and removes it otherwise.
func (s *catalogService) ToggleTag(tag string) {
	s.updateFilter(func(f models.FilterSpec) models.FilterSpec {
		if i := slices.Index(f.SelectedTags, tag); i >= 0 {
			f.SelectedTags = slices.Delete(f.SelectedTags, i, i+1)
		} else {
			f.SelectedTags = append(f.SelectedTags, tag)
		}
		return f
	})
}

func (s *catalogService) ClearFilter() {
	s.updateFilter(func(models.FilterSpec) models.FilterSpec {
		return models.DefaultFilter()
	})
}

func (s *catalogService) Visible() []models.Prompt {
	s.mu.RLock()
	records, filter := s.records, s.filter.Clone()
	s.mu.RUnlock()

	return query.Apply(records, filter)
}

func (s *catalogService) Get(id string) (models.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.records {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Prompt{}, false
}

func (s *catalogService) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tags)
}

func (s *catalogService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingLocked()
}

// loadingLocked reports true before the first Load finishes and while any
// Load is in flight.
func (s *catalogService) loadingLocked() bool {
	return !s.loaded || s.inflight > 0
}

func (s *catalogService) Filter() models.FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Clone()
}

func (s *catalogService) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *catalogService) snapshotLocked() State {
	records := make([]models.Prompt, len(s.records))
	for i, p := range s.records {
		records[i] = p.Clone()
	}
	return State{
		Records: records,
		Tags:    slices.Clone(s.tags),
		Loading: s.loadingLocked(),
		Filter:  s.filter.Clone(),
	}
}

func (s *catalogService) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *catalogService) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
