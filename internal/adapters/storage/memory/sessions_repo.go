package memory

import (
	"context"
	"sync"

	"pettrackr/internal/domain/sessions"
)

// sessionRepo es el fallback cuando no hay REDIS_URL. La expiración la
// chequea el service; acá solo se guarda.
type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]sessions.Session
}

func NewSessionRepo() sessions.Repository {
	return &sessionRepo{byID: make(map[string]sessions.Session)}
}

func (r *sessionRepo) Save(ctx context.Context, s sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (sessions.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
