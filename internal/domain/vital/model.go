package vital

import (
	"time"

	"github.com/google/uuid"
)

// Vital is a single measurement, e.g. blood pressure or weight.
type Vital struct {
	ID         uuid.UUID `db:"id" json:"id"`
	VitalType  string    `db:"vital_type" json:"vital_type"`
	Value      float64   `db:"value" json:"value"`
	Unit       string    `db:"unit" json:"unit"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Stats struct {
	Total int `json:"total"`
}
