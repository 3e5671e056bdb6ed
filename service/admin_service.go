package service

import (
	"context"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// AdminService the two privileged backend functions. The backend verifies
// the admin credentials itself, so they are taken per call and are never
// stored or logged here.
type AdminService struct {
	repo   repository.AdminRepository
	logger *zap.Logger
}

func NewAdminService(repo repository.AdminRepository, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

// AdminCredentials per-call admin credentials
type AdminCredentials struct {
	Number   string
	Password string
}

func (c AdminCredentials) validate() error {
	if c.Number == "" {
		return domain.Required("admin number")
	}
	if c.Password == "" {
		return domain.Required("admin password")
	}
	return nil
}

// ListAllProfiles returns every profile, credentials permitting.
func (s *AdminService) ListAllProfiles(ctx context.Context, creds AdminCredentials) ([]domain.AdminProfile, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	return s.repo.ListAllProfiles(ctx, creds.Number, creds.Password)
}

// DeleteUser removes a user account and its data, credentials permitting.
func (s *AdminService) DeleteUser(ctx context.Context, targetAuthUID string, creds AdminCredentials) error {
	if targetAuthUID == "" {
		return domain.Required("target user id")
	}
	if err := creds.validate(); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, targetAuthUID, creds.Number, creds.Password); err != nil {
		return err
	}
	s.logger.Info("user deleted by admin", zap.String("target_auth_uid", targetAuthUID))
	return nil
}
