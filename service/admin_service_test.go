package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/domain"
)

// stubAdminRepo records calls; the real credential check lives in the backend.
type stubAdminRepo struct {
	profiles    []domain.AdminProfile
	deletedUIDs []string
	lastNumber  string
}

func (s *stubAdminRepo) ListAllProfiles(ctx context.Context, adminNumber, adminPassword string) ([]domain.AdminProfile, error) {
	s.lastNumber = adminNumber
	return s.profiles, nil
}

func (s *stubAdminRepo) DeleteUser(ctx context.Context, targetAuthUID, adminNumber, adminPassword string) error {
	s.deletedUIDs = append(s.deletedUIDs, targetAuthUID)
	return nil
}

func TestAdminListAllProfiles(t *testing.T) {
	repo := &stubAdminRepo{profiles: []domain.AdminProfile{{AuthUID: "u1", Email: "u1@example.com"}}}
	svc := NewAdminService(repo, zap.NewNop())

	rows, err := svc.ListAllProfiles(context.Background(), AdminCredentials{Number: "7", Password: "secret"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "7", repo.lastNumber)
}

func TestAdmin_CredentialsRequired(t *testing.T) {
	svc := NewAdminService(&stubAdminRepo{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListAllProfiles(ctx, AdminCredentials{Password: "secret"})
	require.True(t, domain.IsValidation(err))

	_, err = svc.ListAllProfiles(ctx, AdminCredentials{Number: "7"})
	require.True(t, domain.IsValidation(err))

	err = svc.DeleteUser(ctx, "u1", AdminCredentials{})
	require.True(t, domain.IsValidation(err))
}

func TestAdminDeleteUser(t *testing.T) {
	repo := &stubAdminRepo{}
	svc := NewAdminService(repo, zap.NewNop())

	err := svc.DeleteUser(context.Background(), "u1", AdminCredentials{Number: "7", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, repo.deletedUIDs)

	err = svc.DeleteUser(context.Background(), "", AdminCredentials{Number: "7", Password: "secret"})
	require.True(t, domain.IsValidation(err))
}
