package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// RulesService the building-rules singleton.
type RulesService struct {
	repo     repository.RulesRepository
	identity Identity
	logger   *zap.Logger
}

func NewRulesService(repo repository.RulesRepository, identity Identity, logger *zap.Logger) *RulesService {
	return &RulesService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// GetBuildingRules returns the singleton rules row, or nil when nothing was
// ever saved.
func (s *RulesService) GetBuildingRules(ctx context.Context) (*domain.BuildingRules, error) {
	return s.repo.Get(ctx)
}

// SaveRulesInput save parameters. Token is the updated_at value the editor
// read before editing; zero means the caller opts out of conflict detection
// and the write is last-write-wins.
type SaveRulesInput struct {
	Content string
	Token   time.Time
}

// SaveBuildingRules writes the singleton. With a token the write fails with
// domain.ErrConflict when another editor saved in between; a first-ever save
// always succeeds.
func (s *RulesService) SaveBuildingRules(ctx context.Context, in SaveRulesInput) (*domain.BuildingRules, error) {
	if in.Content == "" {
		return nil, domain.Required("content")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	var saved *domain.BuildingRules
	if in.Token.IsZero() {
		saved, err = s.repo.Upsert(ctx, in.Content, user.ID)
	} else {
		saved, err = s.repo.UpsertIfUnchanged(ctx, in.Content, user.ID, in.Token)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("building rules saved", zap.String("updated_by", user.ID))
	return saved, nil
}
