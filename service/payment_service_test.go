package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *repository.MemoryProfilesRepo) {
	t.Helper()
	payments := repository.NewMemoryPaymentsRepo()
	profiles := repository.NewMemoryProfilesRepo()
	svc := NewPaymentService(payments, profiles, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())
	return svc, profiles
}

func TestGetCommitteeMembers_FiltersByLinkAndFlag(t *testing.T) {
	svc, profiles := newPaymentFixture(t)
	ctx := context.Background()

	link := "https://pay.example/rivka"
	require.NoError(t, profiles.Upsert(ctx, domain.Profile{
		AuthUID:              "committee-1",
		FirstName:            "Rivka",
		LastName:             "Levi",
		IsHouseCommittee:     true,
		CommitteePaymentLink: &link,
	}))
	// Committee member without a published link is not payable.
	require.NoError(t, profiles.Upsert(ctx, domain.Profile{
		AuthUID:          "committee-2",
		FirstName:        "Dov",
		LastName:         "Katz",
		IsHouseCommittee: true,
	}))
	// Regular tenant with a link set is not a committee member.
	require.NoError(t, profiles.Upsert(ctx, domain.Profile{
		AuthUID:              "tenant-2",
		FirstName:            "Noa",
		LastName:             "Mizrahi",
		CommitteePaymentLink: &link,
	}))

	members, err := svc.GetCommitteeMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "committee-1", members[0].AuthUID)
	require.Equal(t, link, members[0].CommitteePaymentLink)
}

func TestCreateHouseFeePayment(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	created, err := svc.CreateHouseFeePayment(context.Background(), CreatePaymentInput{
		CommitteeAuthUserID: "committee-1",
		Amount:              350,
		MonthYear:           "08-2026",
	})
	require.NoError(t, err)
	require.Equal(t, "tenant-1", created.TenantAuthUserID)
	require.Equal(t, domain.PaymentInitiated, created.Status)
}

func TestCreateHouseFeePayment_Validation(t *testing.T) {
	svc, _ := newPaymentFixture(t)
	ctx := context.Background()

	_, err := svc.CreateHouseFeePayment(ctx, CreatePaymentInput{Amount: 350, MonthYear: "08-2026"})
	require.True(t, domain.IsValidation(err))

	_, err = svc.CreateHouseFeePayment(ctx, CreatePaymentInput{
		CommitteeAuthUserID: "committee-1",
		Amount:              -5,
		MonthYear:           "08-2026",
	})
	require.True(t, domain.IsValidation(err))

	_, err = svc.CreateHouseFeePayment(ctx, CreatePaymentInput{
		CommitteeAuthUserID: "committee-1",
		Amount:              350,
	})
	require.True(t, domain.IsValidation(err))
}

func TestMarkPaymentAsPaid(t *testing.T) {
	svc, _ := newPaymentFixture(t)
	ctx := context.Background()

	created, err := svc.CreateHouseFeePayment(ctx, CreatePaymentInput{
		CommitteeAuthUserID: "committee-1",
		Amount:              350,
		MonthYear:           "08-2026",
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaymentAsPaid(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, paid.Status)

	_, err = svc.MarkPaymentAsPaid(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
