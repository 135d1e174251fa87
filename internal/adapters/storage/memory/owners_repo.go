package memory

import (
	"context"
	"sync"

	"pettrackr/internal/domain/owners"
)

// ownerRepo indexa por id y por email (ya normalizado por el service).
type ownerRepo struct {
	mu      sync.RWMutex
	byID    map[string]owners.Owner
	byEmail map[string]string
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID:    make(map[string]owners.Owner),
		byEmail: make(map[string]string),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[o.Email]; taken {
		return owners.ErrConflict
	}
	r.byID[o.ID] = o
	r.byEmail[o.Email] = o.ID
	return nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[o.ID]
	if !ok {
		return owners.ErrNotFound
	}
	if id, taken := r.byEmail[o.Email]; taken && id != o.ID {
		return owners.ErrConflict
	}
	delete(r.byEmail, prev.Email)
	r.byID[o.ID] = o
	r.byEmail[o.Email] = o.ID
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.ErrNotFound
	}
	delete(r.byEmail, o.Email)
	delete(r.byID, id)
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return r.byID[id], nil
}
