package repository

import (
	"context"
	"time"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// SupabaseDocumentsRepo DocumentsRepository against the remote
// building_documents table.
type SupabaseDocumentsRepo struct {
	client *supabase.Client
}

func NewSupabaseDocumentsRepo(client *supabase.Client) *SupabaseDocumentsRepo {
	return &SupabaseDocumentsRepo{client: client}
}

func (r *SupabaseDocumentsRepo) List(ctx context.Context, buildingID *string) ([]domain.BuildingDocument, error) {
	q := supabase.NewQuery().
		Columns("id, title, file_path, building_id, created_at, uploaded_by").
		OrderDesc("created_at")
	if buildingID != nil {
		q.Eq("building_id", *buildingID)
	}
	var rows []domain.BuildingDocument
	if err := r.client.Select(ctx, "building_documents", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseDocumentsRepo) Insert(ctx context.Context, row NewDocument) (*domain.BuildingDocument, error) {
	body := map[string]any{
		"title":       row.Title,
		"file_path":   row.FilePath,
		"building_id": row.BuildingID, // nil marshals to null
		"uploaded_by": row.UploadedBy,
	}
	created := &domain.BuildingDocument{}
	if err := r.client.Insert(ctx, "building_documents", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseDocumentsRepo) Delete(ctx context.Context, id string) error {
	q := supabase.NewQuery().Eq("id", id)
	return r.client.Delete(ctx, "building_documents", q)
}

// SupabaseRulesRepo RulesRepository against the building_rules singleton.
type SupabaseRulesRepo struct {
	client *supabase.Client
}

func NewSupabaseRulesRepo(client *supabase.Client) *SupabaseRulesRepo {
	return &SupabaseRulesRepo{client: client}
}

func (r *SupabaseRulesRepo) Get(ctx context.Context) (*domain.BuildingRules, error) {
	q := supabase.NewQuery().
		Columns("id, content, updated_at, updated_by").
		OrderDesc("updated_at").
		Limit(1)
	row := &domain.BuildingRules{}
	found, err := r.client.SelectMaybe(ctx, "building_rules", q, row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return row, nil
}

func (r *SupabaseRulesRepo) Upsert(ctx context.Context, content, updatedBy string) (*domain.BuildingRules, error) {
	body := map[string]any{
		"id":         domain.BuildingRulesID,
		"content":    content,
		"updated_by": updatedBy,
	}
	row := &domain.BuildingRules{}
	if err := r.client.Upsert(ctx, "building_rules", body, "id", row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *SupabaseRulesRepo) UpsertIfUnchanged(ctx context.Context, content, updatedBy string, expected time.Time) (*domain.BuildingRules, error) {
	patch := map[string]any{
		"content":    content,
		"updated_by": updatedBy,
		"updated_at": time.Now().UTC(),
	}
	q := supabase.NewQuery().
		Eq("id", domain.BuildingRulesID).
		Eq("updated_at", expected.UTC().Format(time.RFC3339Nano))
	var updated []domain.BuildingRules
	if err := r.client.Update(ctx, "building_rules", patch, q, &updated); err != nil {
		return nil, err
	}
	if len(updated) > 0 {
		return &updated[0], nil
	}

	// Zero rows matched: either nothing was ever saved (first write wins) or
	// another editor moved updated_at since the caller read it.
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return r.Upsert(ctx, content, updatedBy)
	}
	return nil, domain.ErrConflict
}

// SupabaseUpdatesRepo UpdatesRepository against the remote building_updates
// table.
type SupabaseUpdatesRepo struct {
	client *supabase.Client
}

func NewSupabaseUpdatesRepo(client *supabase.Client) *SupabaseUpdatesRepo {
	return &SupabaseUpdatesRepo{client: client}
}

func (r *SupabaseUpdatesRepo) Create(ctx context.Context, row NewBuildingUpdate) (*domain.BuildingUpdate, error) {
	body := map[string]any{
		"created_by":   row.CreatedBy,
		"title":        row.Title,
		"body":         row.Body,
		"category":     row.Category,
		"is_important": row.IsImportant,
	}
	created := &domain.BuildingUpdate{}
	if err := r.client.Insert(ctx, "building_updates", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseUpdatesRepo) Recent(ctx context.Context, limit int) ([]domain.BuildingUpdate, error) {
	q := supabase.NewQuery().OrderDesc("created_at").Limit(limit)
	var rows []domain.BuildingUpdate
	if err := r.client.Select(ctx, "building_updates", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseUpdatesRepo) Since(ctx context.Context, since time.Time) ([]domain.BuildingUpdate, error) {
	q := supabase.NewQuery().
		Gte("created_at", since.UTC().Format(time.RFC3339)).
		OrderDesc("created_at")
	var rows []domain.BuildingUpdate
	if err := r.client.Select(ctx, "building_updates", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
