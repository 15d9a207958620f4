package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(a *Appointment) error {
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	if a.Doctor == "" {
		return fmt.Errorf("doctor is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if err := validate(a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := validate(a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Stats returns the dashboard summary counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Export returns every appointment row for the backup dump.
func (s *Service) Export(ctx context.Context) ([]*Appointment, error) {
	return s.repo.All(ctx)
}

// Import replaces the table contents with the given rows. Rows are validated
// before any write; an empty list empties the table.
func (s *Service) Import(ctx context.Context, items []*Appointment) error {
	for i, a := range items {
		if err := validate(a); err != nil {
			return fmt.Errorf("appointment %d: %w", i, err)
		}
	}
	return s.repo.Replace(ctx, items)
}
