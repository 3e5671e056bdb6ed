package domain

import "time"

// ProviderCategory 'service_providers.category' enumeration
type ProviderCategory string

const (
	ProviderPlumber     ProviderCategory = "PLUMBER"
	ProviderElectrician ProviderCategory = "ELECTRICIAN"
	ProviderCleaning    ProviderCategory = "CLEANING"
	ProviderGeneral     ProviderCategory = "GENERAL"
)

func (c ProviderCategory) Valid() bool {
	switch c {
	case ProviderPlumber, ProviderElectrician, ProviderCleaning, ProviderGeneral:
		return true
	}
	return false
}

// ServiceProvider committee-owned reference data (service_providers table).
type ServiceProvider struct {
	ID        string           `json:"id"`        // UUID, PRIMARY KEY
	Name      string           `json:"name"`      // NOT NULL, the only required field
	Phone     string           `json:"phone"`     // nullable
	Email     string           `json:"email"`     // nullable
	Category  ProviderCategory `json:"category"`  // nullable
	Notes     string           `json:"notes"`     // nullable
	IsActive  bool             `json:"is_active"` // DEFAULT true
	CreatedAt time.Time        `json:"created_at"`
}
