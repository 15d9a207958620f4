package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication maps to the medication table: a drug the user is currently
// taking, with its dosing schedule and a daily taken flag.
type Medication struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Dosage    string    `db:"dosage" json:"dosage"`
	Frequency string    `db:"frequency" json:"frequency"`
	Time      string    `db:"time" json:"time"` // HH:MM, user-local
	Taken     bool      `db:"taken" json:"taken"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Stats is the medication summary row on the dashboard.
type Stats struct {
	Total int `json:"total"`
	Taken int `json:"taken"`
}
