package vital

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Vital) error
	GetByID(ctx context.Context, id uuid.UUID) (*Vital, error)
	Update(ctx context.Context, v *Vital) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Vital, int, error)
	All(ctx context.Context) ([]*Vital, error)
	Stats(ctx context.Context) (*Stats, error)
	Replace(ctx context.Context, items []*Vital) error
}
