package vetvisits

import "context"

type Repository interface {
	Create(ctx context.Context, v VetVisit) error
	Update(ctx context.Context, v VetVisit) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (VetVisit, error)
	// ListByPet devuelve la visita más reciente primero.
	ListByPet(ctx context.Context, petID string) ([]VetVisit, error)
	DeleteByPet(ctx context.Context, petID string) error
}
