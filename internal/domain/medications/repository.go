package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Medication, error)
	// ListByPet devuelve ordenado por TimeToAdminister asc.
	ListByPet(ctx context.Context, petID string) ([]Medication, error)
	DeleteByPet(ctx context.Context, petID string) error
}
