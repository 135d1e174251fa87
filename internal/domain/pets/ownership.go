package pets

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type petCtxKey struct{}

// OwnerOf expone el owner de una mascota sin que otros módulos importen el repo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

// PetContext resuelve {petId} dentro de /owners/{ownerId} y deja la mascota
// en el contexto. Mascota ajena o inexistente => 404.
// Los módulos hijos (feeding, medications, vetvisits) cuelgan de acá.
func PetContext(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "ownerId"), chi.URLParam(r, "petId"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					http.Error(w, "pet not found", http.StatusNotFound)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPet(r.Context(), p)))
		})
	}
}

func WithPet(ctx context.Context, p Pet) context.Context {
	return context.WithValue(ctx, petCtxKey{}, p)
}

func FromContext(ctx context.Context) (Pet, bool) {
	p, ok := ctx.Value(petCtxKey{}).(Pet)
	return p, ok
}
