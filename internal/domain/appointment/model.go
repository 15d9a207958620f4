package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. Location and Notes are
// optional and stay NULL when omitted.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Doctor      string    `db:"doctor" json:"doctor"`
	Location    *string   `db:"location" json:"location"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Notes       *string   `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Stats is the appointment summary row on the dashboard. Upcoming counts
// appointments scheduled at or after the current instant.
type Stats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
}
