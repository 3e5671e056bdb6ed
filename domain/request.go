package domain

import "time"

// RequestCategory 'requests.category' enumeration
type RequestCategory string

const (
	CategoryItemLoan     RequestCategory = "ITEM_LOAN"
	CategoryPhysicalHelp RequestCategory = "PHYSICAL_HELP"
	CategoryInfo         RequestCategory = "INFO"
	CategoryOther        RequestCategory = "OTHER"
)

// Valid reports whether c is one of the enumerated categories.
func (c RequestCategory) Valid() bool {
	switch c {
	case CategoryItemLoan, CategoryPhysicalHelp, CategoryInfo, CategoryOther:
		return true
	}
	return false
}

// Urgency shared LOW/MEDIUM/HIGH scale (requests.urgency, disturbance_reports.severity)
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// RequestStatus 'requests.status' enumeration
type RequestStatus string

const (
	RequestOpen      RequestStatus = "OPEN"
	RequestCancelled RequestStatus = "CANCELLED"
)

// Request help request row (requests table).
// Created by a tenant; mutated only by its author; never hard-deleted.
type Request struct {
	ID              string          `json:"id"`                // UUID, PRIMARY KEY
	AuthUserID      string          `json:"auth_user_id"`      // UUID, author identity
	Title           string          `json:"title"`             // NOT NULL
	Description     string          `json:"description"`       // NOT NULL
	Category        RequestCategory `json:"category"`          // NOT NULL
	Urgency         Urgency         `json:"urgency"`           // NOT NULL
	IsCommitteeOnly bool            `json:"is_committee_only"` // DEFAULT false; gates the public list
	Status          RequestStatus   `json:"status"`            // DEFAULT 'OPEN'
	CreatedAt       time.Time       `json:"created_at"`
	ExpiresAt       *time.Time      `json:"expires_at"` // nullable; defaulted to created+24h on create
	ClosedAt        *time.Time      `json:"closed_at"`  // set on cancel
}
