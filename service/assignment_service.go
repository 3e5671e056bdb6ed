package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// AssignmentService the report-to-provider assignment workflow.
//
// By default status updates are permissive: any valid status can be written
// over any other, matching the original behavior where the store performed a
// plain overwrite. With strictTransitions the lattice
// REQUESTED -> IN_PROGRESS -> DONE is enforced, CANCELED is reachable from
// any non-terminal state, and DONE/CANCELED are frozen.
type AssignmentService struct {
	repo              repository.AssignmentsRepository
	identity          Identity
	strictTransitions bool
	logger            *zap.Logger
}

func NewAssignmentService(repo repository.AssignmentsRepository, identity Identity, strictTransitions bool, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		repo:              repo,
		identity:          identity,
		strictTransitions: strictTransitions,
		logger:            logger,
	}
}

// GetAssignmentsForReport returns every assignment for a report, newest
// first, with the provider's public fields embedded.
func (s *AssignmentService) GetAssignmentsForReport(ctx context.Context, reportID string) ([]domain.DisturbanceAssignment, error) {
	if reportID == "" {
		return nil, domain.Required("report_id")
	}
	return s.repo.ListByReport(ctx, reportID)
}

// CreateAssignmentInput create parameters for an assignment
type CreateAssignmentInput struct {
	ReportID   string
	ProviderID string
	Note       *string
}

// CreateAssignment links a provider to a report with status REQUESTED.
// Multiple assignments per report are allowed; the newest non-terminal one
// is the current assignment.
func (s *AssignmentService) CreateAssignment(ctx context.Context, in CreateAssignmentInput) (*domain.DisturbanceAssignment, error) {
	if in.ReportID == "" {
		return nil, domain.Required("report_id")
	}
	if in.ProviderID == "" {
		return nil, domain.Required("provider_id")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, repository.NewAssignment{
		ReportID:   in.ReportID,
		ProviderID: in.ProviderID,
		CreatedBy:  user.ID,
		Note:       in.Note,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		zap.String("assignment_id", created.ID),
		zap.String("report_id", in.ReportID),
		zap.String("provider_id", in.ProviderID))
	return created, nil
}

// UpdateAssignmentStatusInput status update parameters
type UpdateAssignmentStatusInput struct {
	AssignmentID string
	Status       domain.AssignmentStatus
	Note         *string // nil clears the stored note
}

// UpdateAssignmentStatus writes a new status and note. The note is
// overwritten on every call; a nil note clears it.
func (s *AssignmentService) UpdateAssignmentStatus(ctx context.Context, in UpdateAssignmentStatusInput) (*domain.DisturbanceAssignment, error) {
	if in.AssignmentID == "" {
		return nil, domain.Required("assignment_id")
	}
	if !in.Status.Valid() {
		return nil, domain.Invalid("status", "unknown value")
	}

	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}

	if s.strictTransitions {
		current, err := s.repo.Get(ctx, in.AssignmentID)
		if err != nil {
			return nil, err
		}
		if !transitionAllowed(current.Status, in.Status) {
			return nil, domain.Invalid("status",
				fmt.Sprintf("transition %s -> %s is not allowed", current.Status, in.Status))
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, in.AssignmentID, in.Status, in.Note)
	if err != nil {
		return nil, err
	}
	s.logger.Info("assignment status updated",
		zap.String("assignment_id", in.AssignmentID),
		zap.String("status", string(in.Status)))
	return updated, nil
}

// CurrentAssignment returns the newest non-terminal assignment for a report,
// or found=false when none is active.
func (s *AssignmentService) CurrentAssignment(ctx context.Context, reportID string) (*domain.DisturbanceAssignment, bool, error) {
	if reportID == "" {
		return nil, false, domain.Required("report_id")
	}
	return s.repo.Current(ctx, reportID)
}

// transitionAllowed the strict lattice. Terminal states admit nothing.
func transitionAllowed(from, to domain.AssignmentStatus) bool {
	if from.Terminal() {
		return false
	}
	switch to {
	case domain.AssignmentCanceled:
		return true
	case domain.AssignmentInProgress:
		return from == domain.AssignmentRequested
	case domain.AssignmentDone:
		return from == domain.AssignmentInProgress
	}
	return false
}
