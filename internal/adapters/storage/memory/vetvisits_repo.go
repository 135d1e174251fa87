package memory

import (
	"context"
	"sort"
	"sync"

	"pettrackr/internal/domain/vetvisits"
)

type vetVisitRepo struct {
	mu   sync.RWMutex
	byID map[string]vetvisits.VetVisit
}

func NewVetVisitRepo() vetvisits.Repository {
	return &vetVisitRepo{byID: make(map[string]vetvisits.VetVisit)}
}

func (r *vetVisitRepo) Create(ctx context.Context, v vetvisits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	return nil
}

func (r *vetVisitRepo) Update(ctx context.Context, v vetvisits.VetVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[v.ID]; !ok {
		return vetvisits.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vetVisitRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return vetvisits.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *vetVisitRepo) GetByID(ctx context.Context, id string) (vetvisits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vetvisits.VetVisit{}, vetvisits.ErrNotFound
	}
	return v, nil
}

// ListByPet: más reciente primero.
func (r *vetVisitRepo) ListByPet(ctx context.Context, petID string) ([]vetvisits.VetVisit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vetvisits.VetVisit, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VisitDate.Equal(out[j].VisitDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].VisitDate.After(out[j].VisitDate)
	})
	return out, nil
}

func (r *vetVisitRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, v := range r.byID {
		if v.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}
