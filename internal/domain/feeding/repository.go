package feeding

import "context"

type Repository interface {
	Create(ctx context.Context, s Schedule) error
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Schedule, error)
	// ListByPet devuelve ordenado por Time asc.
	ListByPet(ctx context.Context, petID string) ([]Schedule, error)
	DeleteByPet(ctx context.Context, petID string) error
}
