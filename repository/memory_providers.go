package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vaadbayit/domain"
)

// MemoryProvidersRepo in-memory ProvidersRepository for tests and local use.
type MemoryProvidersRepo struct {
	mu        sync.RWMutex
	providers map[string]domain.ServiceProvider
}

func NewMemoryProvidersRepo() *MemoryProvidersRepo {
	return &MemoryProvidersRepo{providers: make(map[string]domain.ServiceProvider)}
}

func (r *MemoryProvidersRepo) List(ctx context.Context, onlyActive bool) ([]domain.ServiceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ServiceProvider, 0, len(r.providers))
	for _, p := range r.providers {
		if onlyActive && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryProvidersRepo) Create(ctx context.Context, row NewProvider) (*domain.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := domain.ServiceProvider{
		ID:        uuid.NewString(),
		Name:      row.Name,
		Phone:     row.Phone,
		Email:     row.Email,
		Category:  row.Category,
		Notes:     row.Notes,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	r.providers[p.ID] = p
	return &p, nil
}

func (r *MemoryProvidersRepo) Update(ctx context.Context, id string, patch ProviderPatch) (*domain.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	r.providers[id] = p
	return &p, nil
}

func (r *MemoryProvidersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.providers, id)
	return nil
}

// get internal lookup used by MemoryAssignmentsRepo to embed provider fields.
func (r *MemoryProvidersRepo) get(id string) (domain.ServiceProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}
