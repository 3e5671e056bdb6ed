package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vaadbayit/domain"
)

// MemoryAssignmentsRepo in-memory AssignmentsRepository for tests and local
// use. Takes the providers repo so reads can embed provider fields the way
// the remote foreign-key join does.
type MemoryAssignmentsRepo struct {
	mu          sync.RWMutex
	assignments map[string]domain.DisturbanceAssignment
	providers   *MemoryProvidersRepo
}

func NewMemoryAssignmentsRepo(providers *MemoryProvidersRepo) *MemoryAssignmentsRepo {
	return &MemoryAssignmentsRepo{
		assignments: make(map[string]domain.DisturbanceAssignment),
		providers:   providers,
	}
}

func (r *MemoryAssignmentsRepo) embed(a domain.DisturbanceAssignment) domain.DisturbanceAssignment {
	if r.providers == nil {
		return a
	}
	if p, ok := r.providers.get(a.ProviderID); ok {
		a.Provider = &domain.AssignmentProvider{
			ID:       p.ID,
			Name:     p.Name,
			Phone:    p.Phone,
			Category: p.Category,
		}
	}
	return a
}

func (r *MemoryAssignmentsRepo) ListByReport(ctx context.Context, reportID string) ([]domain.DisturbanceAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.DisturbanceAssignment
	for _, a := range r.assignments {
		if a.ReportID == reportID {
			out = append(out, r.embed(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryAssignmentsRepo) Get(ctx context.Context, id string) (*domain.DisturbanceAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assignments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a = r.embed(a)
	return &a, nil
}

func (r *MemoryAssignmentsRepo) Create(ctx context.Context, row NewAssignment) (*domain.DisturbanceAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a := domain.DisturbanceAssignment{
		ID:             uuid.NewString(),
		ReportID:       row.ReportID,
		ProviderID:     row.ProviderID,
		Status:         domain.AssignmentRequested,
		LastUpdateNote: row.Note,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.assignments[a.ID] = a
	a = r.embed(a)
	return &a, nil
}

func (r *MemoryAssignmentsRepo) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, note *string) (*domain.DisturbanceAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assignments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	a.LastUpdateNote = note
	a.UpdatedAt = time.Now().UTC()
	r.assignments[id] = a
	a = r.embed(a)
	return &a, nil
}

func (r *MemoryAssignmentsRepo) Current(ctx context.Context, reportID string) (*domain.DisturbanceAssignment, bool, error) {
	rows, err := r.ListByReport(ctx, reportID)
	if err != nil {
		return nil, false, err
	}
	for i := range rows {
		if !rows[i].Status.Terminal() {
			return &rows[i], true, nil
		}
	}
	return nil, false, nil
}
