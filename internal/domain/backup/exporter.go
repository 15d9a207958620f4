package backup

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/medtrack/medtrack/internal/domain/appointment"
	"github.com/medtrack/medtrack/internal/domain/medication"
	"github.com/medtrack/medtrack/internal/domain/reminder"
	"github.com/medtrack/medtrack/internal/domain/vital"
)

const (
	keyMedications  = "medications"
	keyReminders    = "reminders"
	keyVitals       = "vitals"
	keyAppointments = "appointments"
)

type MedicationStore interface {
	Export(ctx context.Context) ([]*medication.Medication, error)
	Import(ctx context.Context, items []*medication.Medication) error
}

type ReminderStore interface {
	Export(ctx context.Context) ([]*reminder.Reminder, error)
	Import(ctx context.Context, items []*reminder.Reminder) error
}

type VitalStore interface {
	Export(ctx context.Context) ([]*vital.Vital, error)
	Import(ctx context.Context, items []*vital.Vital) error
}

type AppointmentStore interface {
	Export(ctx context.Context) ([]*appointment.Appointment, error)
	Import(ctx context.Context, items []*appointment.Appointment) error
}

// Stores are the per-table services the backup operations fan out to.
type Stores struct {
	Medications  MedicationStore
	Reminders    ReminderStore
	Vitals       VitalStore
	Appointments AppointmentStore
}

// Exporter dumps all four tables concurrently. A table whose query fails
// still appears in the result, as {"error": <message>}, so one bad table
// never sinks the whole dump.
type Exporter struct {
	stores Stores
	logger zerolog.Logger
}

func NewExporter(stores Stores, logger zerolog.Logger) *Exporter {
	return &Exporter{stores: stores, logger: logger}
}

func (e *Exporter) Export(ctx context.Context) map[string]interface{} {
	data := make(map[string]interface{}, 4)
	var mu sync.Mutex
	var g errgroup.Group

	dump(ctx, &g, &mu, e.logger, data, keyMedications, e.stores.Medications.Export)
	dump(ctx, &g, &mu, e.logger, data, keyReminders, e.stores.Reminders.Export)
	dump(ctx, &g, &mu, e.logger, data, keyVitals, e.stores.Vitals.Export)
	dump(ctx, &g, &mu, e.logger, data, keyAppointments, e.stores.Appointments.Export)

	g.Wait()
	return data
}

func dump[T any](ctx context.Context, g *errgroup.Group, mu *sync.Mutex, logger zerolog.Logger,
	data map[string]interface{}, key string, fetch func(context.Context) ([]*T, error)) {
	g.Go(func() error {
		rows, err := fetch(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			logger.Warn().Err(err).Str("table", key).Msg("export query failed")
			data[key] = map[string]string{"error": err.Error()}
			return nil
		}
		data[key] = rows
		return nil
	})
}
