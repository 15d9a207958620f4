package vital

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

func validate(v *Vital) error {
	if v.VitalType == "" {
		return fmt.Errorf("vital_type is required")
	}
	if v.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if v.RecordedAt.IsZero() {
		return fmt.Errorf("recorded_at is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, v *Vital) error {
	if err := validate(v); err != nil {
		return err
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Vital, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, v *Vital) error {
	if err := validate(v); err != nil {
		return err
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Vital, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Stats returns the dashboard summary counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Export returns every vital row for the backup dump.
func (s *Service) Export(ctx context.Context) ([]*Vital, error) {
	return s.repo.All(ctx)
}

// Import replaces the table contents with the given rows. Rows are validated
// before any write; an empty list empties the table.
func (s *Service) Import(ctx context.Context, items []*Vital) error {
	for i, v := range items {
		if err := validate(v); err != nil {
			return fmt.Errorf("vital %d: %w", i, err)
		}
	}
	return s.repo.Replace(ctx, items)
}
