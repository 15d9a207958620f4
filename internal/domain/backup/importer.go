package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/medtrack/medtrack/internal/domain/appointment"
	"github.com/medtrack/medtrack/internal/domain/medication"
	"github.com/medtrack/medtrack/internal/domain/reminder"
	"github.com/medtrack/medtrack/internal/domain/vital"
)

// RequestError marks importer failures caused by the request payload
// rather than the database. Handlers map it to 400.
type RequestError struct {
	msg string
}

func (e *RequestError) Error() string { return e.msg }

// Importer restores tables from a backup dump. Each named table is
// replaced wholesale inside its own transaction; tables the dump does
// not name are left untouched. There is no cross-table rollback: a
// failure in one table does not undo tables already restored.
type Importer struct {
	stores Stores
	logger zerolog.Logger
}

func NewImporter(stores Stores, logger zerolog.Logger) *Importer {
	return &Importer{stores: stores, logger: logger}
}

func (im *Importer) Import(ctx context.Context, data map[string]json.RawMessage) error {
	// Reject unknown tables before touching anything.
	for key := range data {
		switch key {
		case keyMedications, keyReminders, keyVitals, keyAppointments:
		default:
			return &RequestError{msg: fmt.Sprintf("unknown table %q in import data", key)}
		}
	}

	var (
		meds  []*medication.Medication
		rems  []*reminder.Reminder
		vits  []*vital.Vital
		appts []*appointment.Appointment
	)
	if err := decode(data, keyMedications, &meds); err != nil {
		return err
	}
	if err := decode(data, keyReminders, &rems); err != nil {
		return err
	}
	if err := decode(data, keyVitals, &vits); err != nil {
		return err
	}
	if err := decode(data, keyAppointments, &appts); err != nil {
		return err
	}

	var g errgroup.Group
	if _, ok := data[keyMedications]; ok {
		g.Go(func() error { return restore(ctx, im.logger, keyMedications, meds, im.stores.Medications.Import) })
	}
	if _, ok := data[keyReminders]; ok {
		g.Go(func() error { return restore(ctx, im.logger, keyReminders, rems, im.stores.Reminders.Import) })
	}
	if _, ok := data[keyVitals]; ok {
		g.Go(func() error { return restore(ctx, im.logger, keyVitals, vits, im.stores.Vitals.Import) })
	}
	if _, ok := data[keyAppointments]; ok {
		g.Go(func() error { return restore(ctx, im.logger, keyAppointments, appts, im.stores.Appointments.Import) })
	}
	return g.Wait()
}

func restore[T any](ctx context.Context, logger zerolog.Logger, key string, items []*T,
	load func(context.Context, []*T) error) error {
	if err := load(ctx, items); err != nil {
		logger.Error().Err(err).Str("table", key).Msg("import failed")
		return fmt.Errorf("import %s: %w", key, err)
	}
	return nil
}

func decode[T any](data map[string]json.RawMessage, key string, dst *[]*T) error {
	raw, ok := data[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &RequestError{msg: fmt.Sprintf("invalid %s data: %v", key, err)}
	}
	return nil
}
