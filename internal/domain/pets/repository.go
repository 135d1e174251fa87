package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
}

// PhotoStore guarda la foto ya procesada y devuelve la URL pública.
type PhotoStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}

// Dependent es un módulo con registros colgando de una mascota
// (feeding, medications, vetvisits). Se borran antes que la mascota.
type Dependent interface {
	DeleteByPet(ctx context.Context, petID string) error
}
