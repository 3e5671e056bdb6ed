package repository

import (
	"context"

	"vaadbayit/domain"
)

// ProvidersRepository data access for the committee's service-provider
// directory.
type ProvidersRepository interface {
	// List returns providers newest first. With onlyActive the is_active
	// filter is applied; without it no active-flag filter is issued at all.
	List(ctx context.Context, onlyActive bool) ([]domain.ServiceProvider, error)

	// Create inserts a provider row.
	Create(ctx context.Context, row NewProvider) (*domain.ServiceProvider, error)

	// Update sends a sparse patch; nil fields are omitted.
	Update(ctx context.Context, id string, patch ProviderPatch) (*domain.ServiceProvider, error)

	// Delete removes the row. Hard delete, no soft-delete or audit trail.
	Delete(ctx context.Context, id string) error
}

// NewProvider insert payload for a service provider
type NewProvider struct {
	Name     string
	Phone    string
	Email    string
	Category domain.ProviderCategory
	Notes    string
}

// ProviderPatch sparse update for a provider; nil fields are omitted
type ProviderPatch struct {
	Name     *string
	Phone    *string
	Email    *string
	Category *domain.ProviderCategory
	Notes    *string
	IsActive *bool
}
