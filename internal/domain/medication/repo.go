package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Medication, int, error)
	// All returns every row, unfiltered, for export.
	All(ctx context.Context) ([]*Medication, error)
	// Stats returns the dashboard summary counts.
	Stats(ctx context.Context) (*Stats, error)
	// Replace removes all rows and inserts the given ones in order,
	// atomically.
	Replace(ctx context.Context, items []*Medication) error
}
