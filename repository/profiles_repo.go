package repository

import (
	"context"

	"vaadbayit/domain"
)

// ProfilesRepository per-identity profile rows.
type ProfilesRepository interface {
	// GetByAuthUID returns the caller's profile, or nil when none exists yet.
	GetByAuthUID(ctx context.Context, authUID string) (*domain.Profile, error)

	// Upsert creates or replaces the profile keyed by auth_uid (signup flow).
	Upsert(ctx context.Context, profile domain.Profile) error

	// CommitteeMembers returns committee-flagged profiles that published a
	// payment link (is_house_committee=true AND committee_payment_link not
	// null).
	CommitteeMembers(ctx context.Context) ([]domain.CommitteeMember, error)
}

// PaymentsRepository house-fee payment records.
type PaymentsRepository interface {
	// Create inserts a payment row with status=INITIATED.
	Create(ctx context.Context, row NewPayment) (*domain.HouseFeePayment, error)

	// MarkPaid flips the row to status=PAID.
	MarkPaid(ctx context.Context, id string) (*domain.HouseFeePayment, error)
}

// NewPayment insert payload for a house-fee payment
type NewPayment struct {
	TenantAuthUserID    string
	CommitteeAuthUserID string
	Amount              float64
	MonthYear           string
}

// AdminRepository the two privileged backend functions. The backend
// authenticates these by the passed admin credentials (its fixed interface),
// so the credentials travel as call arguments; they are supplied per call and
// never cached or logged by this module.
type AdminRepository interface {
	ListAllProfiles(ctx context.Context, adminNumber, adminPassword string) ([]domain.AdminProfile, error)
	DeleteUser(ctx context.Context, targetAuthUID, adminNumber, adminPassword string) error
}
