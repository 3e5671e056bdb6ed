package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// defaultRequestTTL lifetime applied when the caller gives no expiry.
const defaultRequestTTL = 24 * time.Hour

// RequestService help requests and disturbance reports.
type RequestService struct {
	repo     repository.RequestsRepository
	identity Identity
	logger   *zap.Logger
}

func NewRequestService(repo repository.RequestsRepository, identity Identity, logger *zap.Logger) *RequestService {
	return &RequestService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// CreateRequestInput create parameters for a help request
type CreateRequestInput struct {
	Title           string
	Description     string
	Category        domain.RequestCategory
	Urgency         domain.Urgency
	ExpiresAt       *time.Time // nil defaults to now+24h
	IsCommitteeOnly bool
}

// CreateRequest validates and inserts a new request owned by the caller.
func (s *RequestService) CreateRequest(ctx context.Context, in CreateRequestInput) (*domain.Request, error) {
	if in.Title == "" {
		return nil, domain.Required("title")
	}
	if in.Description == "" {
		return nil, domain.Required("description")
	}
	if !in.Category.Valid() {
		return nil, domain.Invalid("category", "unknown value")
	}
	if !in.Urgency.Valid() {
		return nil, domain.Invalid("urgency", "unknown value")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	expiresAt := in.ExpiresAt
	if expiresAt == nil {
		t := time.Now().UTC().Add(defaultRequestTTL)
		expiresAt = &t
	}

	created, err := s.repo.CreateRequest(ctx, repository.NewRequest{
		AuthUserID:      user.ID,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Urgency:         in.Urgency,
		ExpiresAt:       expiresAt,
		IsCommitteeOnly: in.IsCommitteeOnly,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("request created",
		zap.String("request_id", created.ID),
		zap.String("category", string(created.Category)),
		zap.String("urgency", string(created.Urgency)))
	return created, nil
}

// GetOpenRequests returns every OPEN request, committee-only included,
// newest first.
func (s *RequestService) GetOpenRequests(ctx context.Context) ([]domain.Request, error) {
	return s.repo.ListRequests(ctx, repository.RequestsFilter{Status: domain.RequestOpen})
}

// GetPublicRequests returns OPEN requests that are not committee-only.
func (s *RequestService) GetPublicRequests(ctx context.Context) ([]domain.Request, error) {
	return s.repo.ListRequests(ctx, repository.RequestsFilter{
		Status:     domain.RequestOpen,
		PublicOnly: true,
	})
}

// UpdateRequest applies a sparse patch to an existing request.
func (s *RequestService) UpdateRequest(ctx context.Context, id string, patch repository.RequestPatch) (*domain.Request, error) {
	if id == "" {
		return nil, domain.Required("id")
	}
	if patch.Empty() {
		return nil, domain.Invalid("patch", "no fields to update")
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, domain.Invalid("category", "unknown value")
	}
	if patch.Urgency != nil && !patch.Urgency.Valid() {
		return nil, domain.Invalid("urgency", "unknown value")
	}

	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}
	return s.repo.UpdateRequest(ctx, id, patch)
}

// CancelRequest marks the request CANCELLED and stamps closed_at.
// Requests are never hard-deleted.
func (s *RequestService) CancelRequest(ctx context.Context, id string) (*domain.Request, error) {
	if id == "" {
		return nil, domain.Required("id")
	}
	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}

	updated, err := s.repo.CancelRequest(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info("request cancelled", zap.String("request_id", id))
	return updated, nil
}

// CreateReportInput create parameters for a disturbance report.
// Only Location is optional; the occurrence time is the tenant's statement
// of fact and is never invented here.
type CreateReportInput struct {
	Type        domain.DisturbanceType
	Severity    domain.Urgency
	Description string
	Location    *string
	OccurredAt  time.Time
}

// CreateDisturbanceReport validates and files a new report for the caller.
// Reports are immutable once filed.
func (s *RequestService) CreateDisturbanceReport(ctx context.Context, in CreateReportInput) (*domain.DisturbanceReport, error) {
	if !in.Type.Valid() {
		return nil, domain.Invalid("type", "unknown value")
	}
	if !in.Severity.Valid() {
		return nil, domain.Invalid("severity", "unknown value")
	}
	if in.Description == "" {
		return nil, domain.Required("description")
	}
	if in.OccurredAt.IsZero() {
		return nil, domain.Required("occurred_at")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateReport(ctx, repository.NewDisturbanceReport{
		AuthUserID:  user.ID,
		Type:        in.Type,
		Severity:    in.Severity,
		Description: in.Description,
		Location:    in.Location,
		OccurredAt:  in.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("disturbance report created",
		zap.String("report_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("severity", string(created.Severity)))
	return created, nil
}

// GetMyDisturbanceReports returns the caller's own reports, newest first.
func (s *RequestService) GetMyDisturbanceReports(ctx context.Context) ([]domain.DisturbanceReport, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReportsByReporter(ctx, user.ID)
}
