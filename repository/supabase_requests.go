package repository

import (
	"context"
	"time"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// SupabaseRequestsRepo RequestsRepository against the remote requests and
// disturbance_reports tables.
type SupabaseRequestsRepo struct {
	client *supabase.Client
}

func NewSupabaseRequestsRepo(client *supabase.Client) *SupabaseRequestsRepo {
	return &SupabaseRequestsRepo{client: client}
}

func (r *SupabaseRequestsRepo) CreateRequest(ctx context.Context, row NewRequest) (*domain.Request, error) {
	body := map[string]any{
		"auth_user_id":      row.AuthUserID,
		"title":             row.Title,
		"description":       row.Description,
		"category":          row.Category,
		"urgency":           row.Urgency,
		"expires_at":        row.ExpiresAt, // nil marshals to null
		"is_committee_only": row.IsCommitteeOnly,
	}
	created := &domain.Request{}
	if err := r.client.Insert(ctx, "requests", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseRequestsRepo) ListRequests(ctx context.Context, filter RequestsFilter) ([]domain.Request, error) {
	q := supabase.NewQuery().OrderDesc("created_at")
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	if filter.PublicOnly {
		q.Eq("is_committee_only", false)
	}
	var rows []domain.Request
	if err := r.client.Select(ctx, "requests", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseRequestsRepo) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*domain.Request, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Urgency != nil {
		fields["urgency"] = *patch.Urgency
	}
	if patch.ExpiresAt != nil {
		fields["expires_at"] = *patch.ExpiresAt
	}
	if patch.IsCommitteeOnly != nil {
		fields["is_committee_only"] = *patch.IsCommitteeOnly
	}

	updated := &domain.Request{}
	q := supabase.NewQuery().Eq("id", id)
	if err := r.client.UpdateSingle(ctx, "requests", fields, q, updated); err != nil {
		if supabase.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SupabaseRequestsRepo) CancelRequest(ctx context.Context, id string, closedAt time.Time) (*domain.Request, error) {
	patch := map[string]any{
		"status":    domain.RequestCancelled,
		"closed_at": closedAt,
	}
	updated := &domain.Request{}
	q := supabase.NewQuery().Eq("id", id)
	if err := r.client.UpdateSingle(ctx, "requests", patch, q, updated); err != nil {
		if supabase.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SupabaseRequestsRepo) CreateReport(ctx context.Context, row NewDisturbanceReport) (*domain.DisturbanceReport, error) {
	body := map[string]any{
		"auth_user_id": row.AuthUserID,
		"type":         row.Type,
		"severity":     row.Severity,
		"description":  row.Description,
		"location":     row.Location, // nil marshals to null
		"occurred_at":  row.OccurredAt,
	}
	created := &domain.DisturbanceReport{}
	if err := r.client.Insert(ctx, "disturbance_reports", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseRequestsRepo) ListReportsByReporter(ctx context.Context, authUserID string) ([]domain.DisturbanceReport, error) {
	q := supabase.NewQuery().
		Eq("auth_user_id", authUserID).
		OrderDesc("created_at")
	var rows []domain.DisturbanceReport
	if err := r.client.Select(ctx, "disturbance_reports", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
