package domain

import "time"

// BuildingDocument metadata row for a stored file (building_documents table).
// The binary payload lives in object storage; the row references it by path.
type BuildingDocument struct {
	ID         string    `json:"id"`          // UUID, PRIMARY KEY
	Title      string    `json:"title"`       // NOT NULL, display title
	FilePath   string    `json:"file_path"`   // storage object path
	BuildingID *string   `json:"building_id"` // nullable; "default" folder when absent
	UploadedBy string    `json:"uploaded_by"` // UUID, uploader identity
	CreatedAt  time.Time `json:"created_at"`
}

// BuildingRulesID the fixed singleton row id. The rules table intentionally
// holds exactly one logical record for the whole installation.
const BuildingRulesID = 1

// BuildingRules free-text house rules (building_rules table, singleton).
type BuildingRules struct {
	ID        int       `json:"id"`         // always BuildingRulesID
	Content   string    `json:"content"`    // free text
	UpdatedBy string    `json:"updated_by"` // UUID of last editor
	UpdatedAt time.Time `json:"updated_at"` // doubles as the concurrency token
}

// UpdateCategory 'building_updates.category' enumeration
type UpdateCategory string

const (
	UpdateGeneral     UpdateCategory = "GENERAL"
	UpdateMaintenance UpdateCategory = "MAINTENANCE"
	UpdateAlert       UpdateCategory = "ALERT"
)

func (c UpdateCategory) Valid() bool {
	switch c {
	case UpdateGeneral, UpdateMaintenance, UpdateAlert:
		return true
	}
	return false
}

// BuildingUpdate committee announcement (building_updates table).
type BuildingUpdate struct {
	ID          string         `json:"id"`           // UUID, PRIMARY KEY
	Title       string         `json:"title"`        // NOT NULL
	Body        string         `json:"body"`         // NOT NULL
	Category    UpdateCategory `json:"category"`     // DEFAULT 'GENERAL'
	IsImportant bool           `json:"is_important"` // DEFAULT false
	CreatedBy   string         `json:"created_by"`   // UUID, publisher identity
	CreatedAt   time.Time      `json:"created_at"`
}
