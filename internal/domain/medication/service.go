package medication

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var timeOfDayRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

func validate(m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if m.Frequency == "" {
		return fmt.Errorf("frequency is required")
	}
	if m.Time != "" && !timeOfDayRe.MatchString(m.Time) {
		return fmt.Errorf("invalid time: %s", m.Time)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Medication) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Stats returns the dashboard summary counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Export returns every medication row for the backup dump.
func (s *Service) Export(ctx context.Context) ([]*Medication, error) {
	return s.repo.All(ctx)
}

// Import replaces the table contents with the given rows. Rows are validated
// before any write; an empty list empties the table.
func (s *Service) Import(ctx context.Context, items []*Medication) error {
	for i, m := range items {
		if err := validate(m); err != nil {
			return fmt.Errorf("medication %d: %w", i, err)
		}
	}
	return s.repo.Replace(ctx, items)
}
