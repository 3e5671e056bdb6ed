package repository

import (
	"context"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// assignmentColumns read shape: assignment row plus the provider's public
// fields embedded via the PostgREST foreign-key relationship.
const assignmentColumns = "id, report_id, provider_id, status, created_at, updated_at, last_update_note, created_by, service_providers ( id, name, phone, category )"

// SupabaseAssignmentsRepo AssignmentsRepository against the remote
// disturbance_assignments table.
type SupabaseAssignmentsRepo struct {
	client *supabase.Client
}

func NewSupabaseAssignmentsRepo(client *supabase.Client) *SupabaseAssignmentsRepo {
	return &SupabaseAssignmentsRepo{client: client}
}

func (r *SupabaseAssignmentsRepo) ListByReport(ctx context.Context, reportID string) ([]domain.DisturbanceAssignment, error) {
	q := supabase.NewQuery().
		Columns(assignmentColumns).
		Eq("report_id", reportID).
		OrderDesc("created_at")
	var rows []domain.DisturbanceAssignment
	if err := r.client.Select(ctx, "disturbance_assignments", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseAssignmentsRepo) Get(ctx context.Context, id string) (*domain.DisturbanceAssignment, error) {
	q := supabase.NewQuery().Columns(assignmentColumns).Eq("id", id)
	row := &domain.DisturbanceAssignment{}
	found, err := r.client.SelectMaybe(ctx, "disturbance_assignments", q, row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

func (r *SupabaseAssignmentsRepo) Create(ctx context.Context, row NewAssignment) (*domain.DisturbanceAssignment, error) {
	body := map[string]any{
		"report_id":        row.ReportID,
		"provider_id":      row.ProviderID,
		"status":           domain.AssignmentRequested,
		"created_by":       row.CreatedBy,
		"last_update_note": row.Note, // nil marshals to null
	}
	created := &domain.DisturbanceAssignment{}
	if err := r.client.Insert(ctx, "disturbance_assignments", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseAssignmentsRepo) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, note *string) (*domain.DisturbanceAssignment, error) {
	patch := map[string]any{
		"status":           status,
		"last_update_note": note, // nil clears the note, as in the original
	}
	updated := &domain.DisturbanceAssignment{}
	q := supabase.NewQuery().Eq("id", id)
	if err := r.client.UpdateSingle(ctx, "disturbance_assignments", patch, q, updated); err != nil {
		if supabase.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SupabaseAssignmentsRepo) Current(ctx context.Context, reportID string) (*domain.DisturbanceAssignment, bool, error) {
	q := supabase.NewQuery().
		Columns(assignmentColumns).
		Eq("report_id", reportID).
		NotIn("status", string(domain.AssignmentDone), string(domain.AssignmentCanceled)).
		OrderDesc("created_at").
		Limit(1)
	var rows []domain.DisturbanceAssignment
	if err := r.client.Select(ctx, "disturbance_assignments", q, &rows); err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}
