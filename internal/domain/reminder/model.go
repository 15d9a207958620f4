package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder maps to the reminder table.
type Reminder struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	RemindAt  time.Time `db:"remind_at" json:"remind_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Stats is the reminder summary row on the dashboard. Today counts
// reminders on the current calendar date (server time zone); Upcoming
// counts those at or after the current instant.
type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
}
