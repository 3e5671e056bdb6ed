package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vaadbayit/domain"
)

// MemoryDocumentsRepo in-memory DocumentsRepository for tests and local use.
type MemoryDocumentsRepo struct {
	mu   sync.RWMutex
	docs map[string]domain.BuildingDocument
}

func NewMemoryDocumentsRepo() *MemoryDocumentsRepo {
	return &MemoryDocumentsRepo{docs: make(map[string]domain.BuildingDocument)}
}

func (r *MemoryDocumentsRepo) List(ctx context.Context, buildingID *string) ([]domain.BuildingDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.BuildingDocument
	for _, d := range r.docs {
		if buildingID != nil {
			if d.BuildingID == nil || *d.BuildingID != *buildingID {
				continue
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryDocumentsRepo) Insert(ctx context.Context, row NewDocument) (*domain.BuildingDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := domain.BuildingDocument{
		ID:         uuid.NewString(),
		Title:      row.Title,
		FilePath:   row.FilePath,
		BuildingID: row.BuildingID,
		UploadedBy: row.UploadedBy,
		CreatedAt:  time.Now().UTC(),
	}
	r.docs[d.ID] = d
	return &d, nil
}

func (r *MemoryDocumentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// MemoryRulesRepo in-memory RulesRepository holding the singleton row.
type MemoryRulesRepo struct {
	mu    sync.Mutex
	rules *domain.BuildingRules
}

func NewMemoryRulesRepo() *MemoryRulesRepo {
	return &MemoryRulesRepo{}
}

func (r *MemoryRulesRepo) Get(ctx context.Context) (*domain.BuildingRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rules == nil {
		return nil, nil
	}
	row := *r.rules
	return &row, nil
}

func (r *MemoryRulesRepo) Upsert(ctx context.Context, content, updatedBy string) (*domain.BuildingRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = &domain.BuildingRules{
		ID:        domain.BuildingRulesID,
		Content:   content,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now().UTC(),
	}
	row := *r.rules
	return &row, nil
}

func (r *MemoryRulesRepo) UpsertIfUnchanged(ctx context.Context, content, updatedBy string, expected time.Time) (*domain.BuildingRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rules != nil && !r.rules.UpdatedAt.Equal(expected) {
		return nil, domain.ErrConflict
	}
	r.rules = &domain.BuildingRules{
		ID:        domain.BuildingRulesID,
		Content:   content,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now().UTC(),
	}
	row := *r.rules
	return &row, nil
}

// MemoryUpdatesRepo in-memory UpdatesRepository for tests and local use.
type MemoryUpdatesRepo struct {
	mu      sync.RWMutex
	updates map[string]domain.BuildingUpdate
}

func NewMemoryUpdatesRepo() *MemoryUpdatesRepo {
	return &MemoryUpdatesRepo{updates: make(map[string]domain.BuildingUpdate)}
}

func (r *MemoryUpdatesRepo) Create(ctx context.Context, row NewBuildingUpdate) (*domain.BuildingUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := domain.BuildingUpdate{
		ID:          uuid.NewString(),
		Title:       row.Title,
		Body:        row.Body,
		Category:    row.Category,
		IsImportant: row.IsImportant,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	r.updates[u.ID] = u
	return &u, nil
}

func (r *MemoryUpdatesRepo) all() []domain.BuildingUpdate {
	out := make([]domain.BuildingUpdate, 0, len(r.updates))
	for _, u := range r.updates {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryUpdatesRepo) Recent(ctx context.Context, limit int) ([]domain.BuildingUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.all()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryUpdatesRepo) Since(ctx context.Context, since time.Time) ([]domain.BuildingUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.BuildingUpdate
	for _, u := range r.all() {
		if !u.CreatedAt.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}
