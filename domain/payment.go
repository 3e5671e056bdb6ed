package domain

import "time"

// PaymentStatus 'house_fee_payments.status' enumeration
type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "INITIATED"
	PaymentPaid      PaymentStatus = "PAID"
)

// HouseFeePayment committee-fee payment record (house_fee_payments table).
// The actual money moves through the committee member's external payment
// link; this row only tracks that a tenant initiated/completed a payment.
type HouseFeePayment struct {
	ID                  string        `json:"id"`                     // UUID, PRIMARY KEY
	TenantAuthUserID    string        `json:"tenant_auth_user_id"`    // UUID, paying tenant
	CommitteeAuthUserID string        `json:"committee_auth_user_id"` // UUID, receiving committee member
	Amount              float64       `json:"amount"`
	MonthYear           string        `json:"month_year"` // e.g. "08-2026"
	Status              PaymentStatus `json:"status"`     // INITIATED -> PAID
	CreatedAt           time.Time     `json:"created_at"`
}

// CommitteeMember subset of Profile used by the pay-fees flow:
// committee-flagged profiles that published a payment link.
type CommitteeMember struct {
	AuthUID              string `json:"auth_uid"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	CommitteePaymentLink string `json:"committee_payment_link"`
	IsHouseCommittee     bool   `json:"is_house_committee"`
}
