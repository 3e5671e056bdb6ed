package repository

import (
	"context"

	"vaadbayit/domain"
)

// AssignmentsRepository data access for the report-to-provider assignment
// relationship. Reads embed the provider's public fields
// (id, name, phone, category) so the UI never joins client-side.
type AssignmentsRepository interface {
	// ListByReport returns all assignments for a report, newest first.
	ListByReport(ctx context.Context, reportID string) ([]domain.DisturbanceAssignment, error)

	// Get returns one assignment by id (domain.ErrNotFound when absent).
	Get(ctx context.Context, id string) (*domain.DisturbanceAssignment, error)

	// Create inserts a new assignment with status=REQUESTED.
	Create(ctx context.Context, row NewAssignment) (*domain.DisturbanceAssignment, error)

	// UpdateStatus overwrites status and last_update_note unconditionally.
	// Transition rules, if any, are enforced by the service layer.
	UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, note *string) (*domain.DisturbanceAssignment, error)

	// Current returns the newest non-terminal assignment for a report
	// (status NOT IN (DONE, CANCELED), created_at desc, limit 1), or
	// found=false when every assignment is terminal or none exist.
	Current(ctx context.Context, reportID string) (*domain.DisturbanceAssignment, bool, error)
}

// NewAssignment insert payload for an assignment
type NewAssignment struct {
	ReportID   string
	ProviderID string
	CreatedBy  string
	Note       *string // nil is stored as null
}
