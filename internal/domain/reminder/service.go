package reminder

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

func validate(r *Reminder) error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.RemindAt.IsZero() {
		return fmt.Errorf("remind_at is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, r *Reminder) error {
	if err := validate(r); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, r *Reminder) error {
	if err := validate(r); err != nil {
		return err
	}
	return s.repo.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Reminder, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Stats returns the dashboard summary counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Export returns every reminder row for the backup dump.
func (s *Service) Export(ctx context.Context) ([]*Reminder, error) {
	return s.repo.All(ctx)
}

// Import replaces the table contents with the given rows. Rows are validated
// before any write; an empty list empties the table.
func (s *Service) Import(ctx context.Context, items []*Reminder) error {
	for i, r := range items {
		if err := validate(r); err != nil {
			return fmt.Errorf("reminder %d: %w", i, err)
		}
	}
	return s.repo.Replace(ctx, items)
}
