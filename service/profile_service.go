package service

import (
	"context"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// ProfileService the caller's own profile row.
type ProfileService struct {
	repo     repository.ProfilesRepository
	identity Identity
	logger   *zap.Logger
}

func NewProfileService(repo repository.ProfilesRepository, identity Identity, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// GetMyProfile returns the caller's profile, or nil when none was created
// yet (a fresh signup before the upsert landed).
func (s *ProfileService) GetMyProfile(ctx context.Context) (*domain.Profile, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByAuthUID(ctx, user.ID)
}

// UpsertProfileInput profile fields the caller may set. Identity fields
// (auth_uid, email) come from the session, not from the input.
type UpsertProfileInput struct {
	FirstName            string
	LastName             string
	Phone                string
	Address              string
	ZipCode              string
	IDNumber             string
	DateOfBirth          string
	PhotoURL             *string
	IsHouseCommittee     bool
	CommitteePaymentLink *string
}

// UpsertProfile creates or replaces the caller's profile, keyed by the
// session's auth identity.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*domain.Profile, error) {
	if in.FirstName == "" {
		return nil, domain.Required("first_name")
	}
	if in.LastName == "" {
		return nil, domain.Required("last_name")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	profile := domain.Profile{
		AuthUID:              user.ID,
		Email:                user.Email,
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Phone:                in.Phone,
		Address:              in.Address,
		ZipCode:              in.ZipCode,
		IDNumber:             in.IDNumber,
		DateOfBirth:          in.DateOfBirth,
		PhotoURL:             in.PhotoURL,
		IsHouseCommittee:     in.IsHouseCommittee,
		CommitteePaymentLink: in.CommitteePaymentLink,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile upserted", zap.String("auth_uid", user.ID))
	return &profile, nil
}
