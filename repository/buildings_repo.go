package repository

import (
	"context"
	"time"

	"vaadbayit/domain"
)

// DocumentsRepository metadata rows for stored building documents.
// The binary itself goes through the object-storage client; these methods
// only touch the building_documents table.
type DocumentsRepository interface {
	// List returns document rows newest first, optionally filtered to one
	// building. nil buildingID returns every row.
	List(ctx context.Context, buildingID *string) ([]domain.BuildingDocument, error)

	// Insert creates the metadata row referencing an already-uploaded blob.
	Insert(ctx context.Context, row NewDocument) (*domain.BuildingDocument, error)

	// Delete removes the metadata row only (the blob is left in place, as in
	// the original flow).
	Delete(ctx context.Context, id string) error
}

// NewDocument insert payload for a document metadata row
type NewDocument struct {
	Title      string
	FilePath   string
	BuildingID *string // nil is stored as null
	UploadedBy string
}

// RulesRepository the building_rules singleton (fixed id=1).
type RulesRepository interface {
	// Get returns the singleton row, or nil when nothing was ever saved.
	Get(ctx context.Context) (*domain.BuildingRules, error)

	// Upsert writes the singleton unconditionally (last write wins).
	Upsert(ctx context.Context, content, updatedBy string) (*domain.BuildingRules, error)

	// UpsertIfUnchanged writes only if the stored updated_at still equals
	// expected; returns domain.ErrConflict otherwise. A first-ever save
	// (no stored row) succeeds regardless of expected.
	UpsertIfUnchanged(ctx context.Context, content, updatedBy string, expected time.Time) (*domain.BuildingRules, error)
}

// UpdatesRepository building announcements.
type UpdatesRepository interface {
	// Create inserts an announcement row.
	Create(ctx context.Context, row NewBuildingUpdate) (*domain.BuildingUpdate, error)

	// Recent returns the newest limit rows.
	Recent(ctx context.Context, limit int) ([]domain.BuildingUpdate, error)

	// Since returns rows created at/after since, newest first.
	Since(ctx context.Context, since time.Time) ([]domain.BuildingUpdate, error)
}

// NewBuildingUpdate insert payload for an announcement
type NewBuildingUpdate struct {
	Title       string
	Body        string
	Category    domain.UpdateCategory
	IsImportant bool
	CreatedBy   string
}
