package repository

import (
	"context"
	"time"

	"vaadbayit/domain"
)

// RequestsRepository data access for help requests and disturbance reports.
// Strongly typed rows; one remote operation per method. Validation and
// identity checks belong to the service layer.
type RequestsRepository interface {
	// ========== requests ==========
	// CreateRequest inserts a new request row and returns the stored row
	// (status defaults to OPEN).
	CreateRequest(ctx context.Context, row NewRequest) (*domain.Request, error)

	// ListRequests returns requests matching filter, newest first.
	// No pagination: the full result set is returned.
	ListRequests(ctx context.Context, filter RequestsFilter) ([]domain.Request, error)

	// UpdateRequest sends a sparse patch: nil fields are not touched
	// (omission, not null).
	UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*domain.Request, error)

	// CancelRequest sets status=CANCELLED and closed_at.
	CancelRequest(ctx context.Context, id string, closedAt time.Time) (*domain.Request, error)

	// ========== disturbance reports ==========
	// CreateReport inserts a new disturbance report. Reports are immutable
	// after creation; there is no update method.
	CreateReport(ctx context.Context, row NewDisturbanceReport) (*domain.DisturbanceReport, error)

	// ListReportsByReporter returns the reporter's own reports, newest first.
	ListReportsByReporter(ctx context.Context, authUserID string) ([]domain.DisturbanceReport, error)
}

// NewRequest insert payload for a help request
type NewRequest struct {
	AuthUserID      string
	Title           string
	Description     string
	Category        domain.RequestCategory
	Urgency         domain.Urgency
	ExpiresAt       *time.Time // nil is stored as null
	IsCommitteeOnly bool
}

// RequestsFilter list filter for requests
type RequestsFilter struct {
	Status     domain.RequestStatus // empty means any status
	PublicOnly bool                 // additionally require is_committee_only=false
}

// RequestPatch sparse update for a request; nil fields are omitted entirely
type RequestPatch struct {
	Title           *string
	Description     *string
	Category        *domain.RequestCategory
	Urgency         *domain.Urgency
	ExpiresAt       *time.Time
	IsCommitteeOnly *bool
}

// Empty reports whether the patch carries no fields.
func (p RequestPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Urgency == nil && p.ExpiresAt == nil && p.IsCommitteeOnly == nil
}

// NewDisturbanceReport insert payload for a disturbance report
type NewDisturbanceReport struct {
	AuthUserID  string
	Type        domain.DisturbanceType
	Severity    domain.Urgency
	Description string
	Location    *string // nil is stored as null
	OccurredAt  time.Time
}
