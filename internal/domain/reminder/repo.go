package reminder

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error)
	Update(ctx context.Context, r *Reminder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Reminder, int, error)
	All(ctx context.Context) ([]*Reminder, error)
	Stats(ctx context.Context) (*Stats, error)
	Replace(ctx context.Context, items []*Reminder) error
}
