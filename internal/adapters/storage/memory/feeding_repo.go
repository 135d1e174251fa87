package memory

import (
	"context"
	"sort"
	"sync"

	"pettrackr/internal/domain/feeding"
)

type feedingRepo struct {
	mu   sync.RWMutex
	byID map[string]feeding.Schedule
}

func NewFeedingRepo() feeding.Repository {
	return &feedingRepo{byID: make(map[string]feeding.Schedule)}
}

func (r *feedingRepo) Create(ctx context.Context, s feeding.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return nil
}

func (r *feedingRepo) Update(ctx context.Context, s feeding.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return feeding.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *feedingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return feeding.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *feedingRepo) GetByID(ctx context.Context, id string) (feeding.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return feeding.Schedule{}, feeding.ErrNotFound
	}
	return s, nil
}

func (r *feedingRepo) ListByPet(ctx context.Context, petID string) ([]feeding.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeding.Schedule, 0)
	for _, s := range r.byID {
		if s.PetID == petID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time == out[j].Time {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *feedingRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.byID {
		if s.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}
