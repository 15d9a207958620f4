package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/medtrack/medtrack/internal/domain/appointment"
	"github.com/medtrack/medtrack/internal/domain/medication"
	"github.com/medtrack/medtrack/internal/domain/reminder"
	"github.com/medtrack/medtrack/internal/domain/vital"
)

// Snapshot is the payload of GET /api/dashboard-stats. Every section is
// present in every response; a section whose query failed carries zero
// counts instead of an error.
type Snapshot struct {
	Medications  medication.Stats  `json:"medications"`
	Reminders    reminder.Stats    `json:"reminders"`
	Vitals       vital.Stats       `json:"vitals"`
	Appointments appointment.Stats `json:"appointments"`
	LastUpdated  time.Time         `json:"lastUpdated"`
}

type MedicationSource interface {
	Stats(ctx context.Context) (*medication.Stats, error)
}

type ReminderSource interface {
	Stats(ctx context.Context) (*reminder.Stats, error)
}

type VitalSource interface {
	Stats(ctx context.Context) (*vital.Stats, error)
}

type AppointmentSource interface {
	Stats(ctx context.Context) (*appointment.Stats, error)
}

// Sources are the per-table stat providers the aggregator fans out to.
type Sources struct {
	Medications  MedicationSource
	Reminders    ReminderSource
	Vitals       VitalSource
	Appointments AppointmentSource
}

const (
	perQueryTimeout = 3 * time.Second
	overallTimeout  = 5 * time.Second
)

// Aggregator runs the four stat queries concurrently and always produces
// a snapshot: a failed or timed-out query is logged and its section falls
// back to zero counts.
type Aggregator struct {
	src    Sources
	logger zerolog.Logger
}

func NewAggregator(src Sources, logger zerolog.Logger) *Aggregator {
	return &Aggregator{src: src, logger: logger}
}

func (a *Aggregator) Snapshot(ctx context.Context) *Snapshot {
	ctx, cancel := context.WithTimeout(ctx, overallTimeout)
	defer cancel()

	snap := &Snapshot{}
	var g errgroup.Group

	collect(ctx, &g, a.logger, "medications", a.src.Medications.Stats, &snap.Medications)
	collect(ctx, &g, a.logger, "reminders", a.src.Reminders.Stats, &snap.Reminders)
	collect(ctx, &g, a.logger, "vitals", a.src.Vitals.Stats, &snap.Vitals)
	collect(ctx, &g, a.logger, "appointments", a.src.Appointments.Stats, &snap.Appointments)

	g.Wait()
	snap.LastUpdated = time.Now().UTC()
	return snap
}

// collect runs one stat query with its own deadline and writes the result
// into dst. Errors never propagate; the zero value stands in.
func collect[T any](ctx context.Context, g *errgroup.Group, logger zerolog.Logger, table string,
	fetch func(context.Context) (*T, error), dst *T) {
	g.Go(func() error {
		qctx, cancel := context.WithTimeout(ctx, perQueryTimeout)
		defer cancel()
		s, err := fetch(qctx)
		if err != nil {
			logger.Warn().Err(err).Str("table", table).Msg("dashboard stats query failed, using zero counts")
			return nil
		}
		*dst = *s
		return nil
	})
}
