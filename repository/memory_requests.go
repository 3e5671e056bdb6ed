package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vaadbayit/domain"
)

// MemoryRequestsRepo in-memory RequestsRepository for tests and local use.
type MemoryRequestsRepo struct {
	mu       sync.RWMutex
	requests map[string]domain.Request
	reports  map[string]domain.DisturbanceReport
}

func NewMemoryRequestsRepo() *MemoryRequestsRepo {
	return &MemoryRequestsRepo{
		requests: make(map[string]domain.Request),
		reports:  make(map[string]domain.DisturbanceReport),
	}
}

func (r *MemoryRequestsRepo) CreateRequest(ctx context.Context, row NewRequest) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req := domain.Request{
		ID:              uuid.NewString(),
		AuthUserID:      row.AuthUserID,
		Title:           row.Title,
		Description:     row.Description,
		Category:        row.Category,
		Urgency:         row.Urgency,
		IsCommitteeOnly: row.IsCommitteeOnly,
		Status:          domain.RequestOpen,
		CreatedAt:       time.Now().UTC(),
		ExpiresAt:       row.ExpiresAt,
	}
	r.requests[req.ID] = req
	return &req, nil
}

func (r *MemoryRequestsRepo) ListRequests(ctx context.Context, filter RequestsFilter) ([]domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Request, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.PublicOnly && req.IsCommitteeOnly {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRequestsRepo) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		req.Title = *patch.Title
	}
	if patch.Description != nil {
		req.Description = *patch.Description
	}
	if patch.Category != nil {
		req.Category = *patch.Category
	}
	if patch.Urgency != nil {
		req.Urgency = *patch.Urgency
	}
	if patch.ExpiresAt != nil {
		t := *patch.ExpiresAt
		req.ExpiresAt = &t
	}
	if patch.IsCommitteeOnly != nil {
		req.IsCommitteeOnly = *patch.IsCommitteeOnly
	}
	r.requests[id] = req
	return &req, nil
}

func (r *MemoryRequestsRepo) CancelRequest(ctx context.Context, id string, closedAt time.Time) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	req.Status = domain.RequestCancelled
	req.ClosedAt = &closedAt
	r.requests[id] = req
	return &req, nil
}

func (r *MemoryRequestsRepo) CreateReport(ctx context.Context, row NewDisturbanceReport) (*domain.DisturbanceReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := domain.DisturbanceReport{
		ID:          uuid.NewString(),
		AuthUserID:  row.AuthUserID,
		Type:        row.Type,
		Severity:    row.Severity,
		Description: row.Description,
		Location:    row.Location,
		OccurredAt:  row.OccurredAt,
		CreatedAt:   time.Now().UTC(),
	}
	r.reports[rep.ID] = rep
	return &rep, nil
}

func (r *MemoryRequestsRepo) ListReportsByReporter(ctx context.Context, authUserID string) ([]domain.DisturbanceReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.DisturbanceReport
	for _, rep := range r.reports {
		if rep.AuthUserID == authUserID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
