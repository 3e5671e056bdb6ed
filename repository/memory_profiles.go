package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vaadbayit/domain"
)

// MemoryProfilesRepo in-memory ProfilesRepository for tests and local use.
type MemoryProfilesRepo struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile // keyed by auth_uid
}

func NewMemoryProfilesRepo() *MemoryProfilesRepo {
	return &MemoryProfilesRepo{profiles: make(map[string]domain.Profile)}
}

func (r *MemoryProfilesRepo) GetByAuthUID(ctx context.Context, authUID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[authUID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryProfilesRepo) Upsert(ctx context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.AuthUID] = profile
	return nil
}

func (r *MemoryProfilesRepo) CommitteeMembers(ctx context.Context) ([]domain.CommitteeMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.CommitteeMember
	for _, p := range r.profiles {
		if !p.IsHouseCommittee || p.CommitteePaymentLink == nil {
			continue
		}
		out = append(out, domain.CommitteeMember{
			AuthUID:              p.AuthUID,
			FirstName:            p.FirstName,
			LastName:             p.LastName,
			CommitteePaymentLink: *p.CommitteePaymentLink,
			IsHouseCommittee:     p.IsHouseCommittee,
		})
	}
	return out, nil
}

// MemoryPaymentsRepo in-memory PaymentsRepository for tests and local use.
type MemoryPaymentsRepo struct {
	mu       sync.RWMutex
	payments map[string]domain.HouseFeePayment
}

func NewMemoryPaymentsRepo() *MemoryPaymentsRepo {
	return &MemoryPaymentsRepo{payments: make(map[string]domain.HouseFeePayment)}
}

func (r *MemoryPaymentsRepo) Create(ctx context.Context, row NewPayment) (*domain.HouseFeePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := domain.HouseFeePayment{
		ID:                  uuid.NewString(),
		TenantAuthUserID:    row.TenantAuthUserID,
		CommitteeAuthUserID: row.CommitteeAuthUserID,
		Amount:              row.Amount,
		MonthYear:           row.MonthYear,
		Status:              domain.PaymentInitiated,
		CreatedAt:           time.Now().UTC(),
	}
	r.payments[p.ID] = p
	return &p, nil
}

func (r *MemoryPaymentsRepo) MarkPaid(ctx context.Context, id string) (*domain.HouseFeePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = domain.PaymentPaid
	r.payments[id] = p
	return &p, nil
}
