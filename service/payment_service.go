package service

import (
	"context"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// PaymentService house-fee payments. The money itself moves through the
// committee member's external payment link; this service only records that a
// tenant initiated or completed a payment.
type PaymentService struct {
	payments repository.PaymentsRepository
	profiles repository.ProfilesRepository
	identity Identity
	logger   *zap.Logger
}

func NewPaymentService(payments repository.PaymentsRepository, profiles repository.ProfilesRepository, identity Identity, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		profiles: profiles,
		identity: identity,
		logger:   logger,
	}
}

// GetCommitteeMembers returns committee members a tenant can pay: committee
// flag set and a payment link published.
func (s *PaymentService) GetCommitteeMembers(ctx context.Context) ([]domain.CommitteeMember, error) {
	return s.profiles.CommitteeMembers(ctx)
}

// CreatePaymentInput create parameters for a payment record
type CreatePaymentInput struct {
	CommitteeAuthUserID string
	Amount              float64
	MonthYear           string // e.g. "08-2026"
}

// CreateHouseFeePayment records that the caller initiated a payment.
func (s *PaymentService) CreateHouseFeePayment(ctx context.Context, in CreatePaymentInput) (*domain.HouseFeePayment, error) {
	if in.CommitteeAuthUserID == "" {
		return nil, domain.Required("committee_auth_user_id")
	}
	if in.Amount <= 0 {
		return nil, domain.Invalid("amount", "must be positive")
	}
	if in.MonthYear == "" {
		return nil, domain.Required("month_year")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	created, err := s.payments.Create(ctx, repository.NewPayment{
		TenantAuthUserID:    user.ID,
		CommitteeAuthUserID: in.CommitteeAuthUserID,
		Amount:              in.Amount,
		MonthYear:           in.MonthYear,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("house fee payment initiated",
		zap.String("payment_id", created.ID),
		zap.String("month_year", created.MonthYear))
	return created, nil
}

// MarkPaymentAsPaid flips a payment record to PAID.
func (s *PaymentService) MarkPaymentAsPaid(ctx context.Context, id string) (*domain.HouseFeePayment, error) {
	if id == "" {
		return nil, domain.Required("id")
	}
	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}

	updated, err := s.payments.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("house fee payment marked paid", zap.String("payment_id", id))
	return updated, nil
}
