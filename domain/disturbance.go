package domain

import "time"

// DisturbanceType 'disturbance_reports.type' enumeration
type DisturbanceType string

const (
	DisturbanceNoise       DisturbanceType = "NOISE"
	DisturbanceCleanliness DisturbanceType = "CLEANLINESS"
	DisturbanceSafety      DisturbanceType = "SAFETY"
	DisturbanceOther       DisturbanceType = "OTHER"
)

func (t DisturbanceType) Valid() bool {
	switch t {
	case DisturbanceNoise, DisturbanceCleanliness, DisturbanceSafety, DisturbanceOther:
		return true
	}
	return false
}

// DisturbanceReport tenant-filed disturbance row (disturbance_reports table).
// Immutable after creation; there is no update path.
type DisturbanceReport struct {
	ID          string          `json:"id"`           // UUID, PRIMARY KEY
	AuthUserID  string          `json:"auth_user_id"` // UUID, reporter identity
	Type        DisturbanceType `json:"type"`         // NOT NULL
	Severity    Urgency         `json:"severity"`     // NOT NULL
	Description string          `json:"description"`  // NOT NULL
	Location    *string         `json:"location"`     // nullable
	OccurredAt  time.Time       `json:"occurred_at"`  // NOT NULL, reported by the tenant
	CreatedAt   time.Time       `json:"created_at"`
}

// AssignmentStatus 'disturbance_assignments.status' enumeration
type AssignmentStatus string

const (
	AssignmentRequested  AssignmentStatus = "REQUESTED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentDone       AssignmentStatus = "DONE"
	AssignmentCanceled   AssignmentStatus = "CANCELED"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentRequested, AssignmentInProgress, AssignmentDone, AssignmentCanceled:
		return true
	}
	return false
}

// Terminal reports whether s is an end state of the workflow.
// The store itself does not block transitions out of terminal states unless
// strict transitions are enabled (see service.AssignmentService).
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentDone || s == AssignmentCanceled
}

// AssignmentProvider provider public fields embedded into an assignment read
// (service_providers join: id, name, phone, category only).
type AssignmentProvider struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Phone    string           `json:"phone"`
	Category ProviderCategory `json:"category"`
}

// DisturbanceAssignment links a report to a service provider
// (disturbance_assignments table). Many assignments per report are allowed.
type DisturbanceAssignment struct {
	ID             string              `json:"id"`               // UUID, PRIMARY KEY
	ReportID       string              `json:"report_id"`        // UUID, NOT NULL
	ProviderID     string              `json:"provider_id"`      // UUID, NOT NULL
	Status         AssignmentStatus    `json:"status"`           // DEFAULT 'REQUESTED'
	LastUpdateNote *string             `json:"last_update_note"` // nullable
	CreatedBy      string              `json:"created_by"`       // UUID, committee actor
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Provider       *AssignmentProvider `json:"service_providers,omitempty"` // embedded on reads
}
