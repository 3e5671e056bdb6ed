package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

func newRulesService(t *testing.T) *RulesService {
	t.Helper()
	repo := repository.NewMemoryRulesRepo()
	return NewRulesService(repo, StaticIdentity{User: testUser("committee-1")}, zap.NewNop())
}

func TestBuildingRules_FirstSave(t *testing.T) {
	svc := newRulesService(t)
	ctx := context.Background()

	rules, err := svc.GetBuildingRules(ctx)
	require.NoError(t, err)
	require.Nil(t, rules)

	// A first save succeeds even with a stale-looking token.
	saved, err := svc.SaveBuildingRules(ctx, SaveRulesInput{
		Content: "No noise after 22:00",
		Token:   time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, domain.BuildingRulesID, saved.ID)
	require.Equal(t, "committee-1", saved.UpdatedBy)
}

func TestBuildingRules_LastWriteWins(t *testing.T) {
	svc := newRulesService(t)
	ctx := context.Background()

	_, err := svc.SaveBuildingRules(ctx, SaveRulesInput{Content: "v1"})
	require.NoError(t, err)
	_, err = svc.SaveBuildingRules(ctx, SaveRulesInput{Content: "v2"})
	require.NoError(t, err)

	rules, err := svc.GetBuildingRules(ctx)
	require.NoError(t, err)
	require.Equal(t, "v2", rules.Content)
}

func TestBuildingRules_StaleTokenConflict(t *testing.T) {
	svc := newRulesService(t)
	ctx := context.Background()

	first, err := svc.SaveBuildingRules(ctx, SaveRulesInput{Content: "v1"})
	require.NoError(t, err)

	// A second editor saves in between.
	_, err = svc.SaveBuildingRules(ctx, SaveRulesInput{Content: "v2"})
	require.NoError(t, err)

	// The first editor's token is now stale.
	_, err = svc.SaveBuildingRules(ctx, SaveRulesInput{
		Content: "v1 revised",
		Token:   first.UpdatedAt,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// The stored content is untouched.
	rules, err := svc.GetBuildingRules(ctx)
	require.NoError(t, err)
	require.Equal(t, "v2", rules.Content)
}

func TestBuildingRules_FreshTokenSucceeds(t *testing.T) {
	svc := newRulesService(t)
	ctx := context.Background()

	saved, err := svc.SaveBuildingRules(ctx, SaveRulesInput{Content: "v1"})
	require.NoError(t, err)

	updated, err := svc.SaveBuildingRules(ctx, SaveRulesInput{
		Content: "v2",
		Token:   saved.UpdatedAt,
	})
	require.NoError(t, err)
	require.Equal(t, "v2", updated.Content)
}
