package repository

import (
	"context"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// SupabaseProvidersRepo ProvidersRepository against the remote
// service_providers table.
type SupabaseProvidersRepo struct {
	client *supabase.Client
}

func NewSupabaseProvidersRepo(client *supabase.Client) *SupabaseProvidersRepo {
	return &SupabaseProvidersRepo{client: client}
}

func (r *SupabaseProvidersRepo) List(ctx context.Context, onlyActive bool) ([]domain.ServiceProvider, error) {
	q := supabase.NewQuery().OrderDesc("created_at")
	if onlyActive {
		q.Eq("is_active", true)
	}
	var rows []domain.ServiceProvider
	if err := r.client.Select(ctx, "service_providers", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseProvidersRepo) Create(ctx context.Context, row NewProvider) (*domain.ServiceProvider, error) {
	body := map[string]any{
		"name":     row.Name,
		"phone":    row.Phone,
		"email":    row.Email,
		"category": row.Category,
		"notes":    row.Notes,
	}
	created := &domain.ServiceProvider{}
	if err := r.client.Insert(ctx, "service_providers", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabaseProvidersRepo) Update(ctx context.Context, id string, patch ProviderPatch) (*domain.ServiceProvider, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	updated := &domain.ServiceProvider{}
	q := supabase.NewQuery().Eq("id", id)
	if err := r.client.UpdateSingle(ctx, "service_providers", fields, q, updated); err != nil {
		if supabase.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *SupabaseProvidersRepo) Delete(ctx context.Context, id string) error {
	q := supabase.NewQuery().Eq("id", id)
	return r.client.Delete(ctx, "service_providers", q)
}
