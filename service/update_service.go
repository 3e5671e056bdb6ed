package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// defaultRecentLimit how many announcements the news screen shows.
const defaultRecentLimit = 20

// UpdateService committee announcements.
type UpdateService struct {
	repo     repository.UpdatesRepository
	identity Identity
	logger   *zap.Logger
}

func NewUpdateService(repo repository.UpdatesRepository, identity Identity, logger *zap.Logger) *UpdateService {
	return &UpdateService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// CreateUpdateInput create parameters for an announcement
type CreateUpdateInput struct {
	Title       string
	Body        string
	Category    domain.UpdateCategory // empty defaults to GENERAL
	IsImportant bool
}

// CreateBuildingUpdate validates and publishes an announcement by the caller.
func (s *UpdateService) CreateBuildingUpdate(ctx context.Context, in CreateUpdateInput) (*domain.BuildingUpdate, error) {
	if in.Title == "" {
		return nil, domain.Required("title")
	}
	if in.Body == "" {
		return nil, domain.Required("body")
	}
	category := in.Category
	if category == "" {
		category = domain.UpdateGeneral
	}
	if !category.Valid() {
		return nil, domain.Invalid("category", "unknown value")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, repository.NewBuildingUpdate{
		Title:       in.Title,
		Body:        in.Body,
		Category:    category,
		IsImportant: in.IsImportant,
		CreatedBy:   user.ID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("building update published",
		zap.String("update_id", created.ID),
		zap.String("category", string(created.Category)))
	return created, nil
}

// GetRecentUpdates returns the newest announcements. limit <= 0 uses the
// default of 20.
func (s *UpdateService) GetRecentUpdates(ctx context.Context, limit int) ([]domain.BuildingUpdate, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}

// GetWeeklyUpdates returns announcements from the last seven days,
// newest first.
func (s *UpdateService) GetWeeklyUpdates(ctx context.Context) ([]domain.BuildingUpdate, error) {
	since := time.Now().UTC().Add(-7 * 24 * time.Hour)
	return s.repo.Since(ctx, since)
}
