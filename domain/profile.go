package domain

// Profile per-identity personal record (profiles table).
// Upserted on signup (on conflict auth_uid), read by most screens for role
// and payment-link resolution.
type Profile struct {
	AuthUID              string  `json:"auth_uid"` // UUID, auth identity, UNIQUE
	Email                string  `json:"email"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	Phone                string  `json:"phone"`
	Address              string  `json:"address"`
	ZipCode              string  `json:"zip_code"`
	IDNumber             string  `json:"id_number,omitempty"` // national id
	DateOfBirth          string  `json:"date_of_birth"`       // stored as text in the original schema
	PhotoURL             *string `json:"photo_url"`           // nullable
	IsHouseCommittee     bool    `json:"is_house_committee"`  // committee actor flag
	CommitteePaymentLink *string `json:"committee_payment_link"` // nullable external payment URL
}

// AdminProfile row shape returned by the get_all_profiles_as_admin RPC.
type AdminProfile struct {
	ID        string `json:"id"`
	AuthUID   string `json:"auth_uid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
