package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pettrackr/internal/domain/sessions"
)

const sessionPrefix = "session:"

// SessionRepo guarda la sesión serializada con TTL hasta ExpiresAt;
// Redis se encarga de limpiar las vencidas.
type SessionRepo struct {
	client *goredis.Client
	now    func() time.Time
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client, now: time.Now}
}

func (r *SessionRepo) Save(ctx context.Context, s sessions.Session) error {
	if s.ID == "" {
		return errors.New("session id required")
	}

	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		// ya vencida: no tiene sentido guardarla
		return r.Delete(ctx, s.ID)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(s.ID), payload, ttl).Err()
}

func (r *SessionRepo) Get(ctx context.Context, id string) (sessions.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return sessions.Session{}, sessions.ErrNotFound
		}
		return sessions.Session{}, err
	}

	var s sessions.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return sessions.Session{}, err
	}
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id string) string {
	return sessionPrefix + id
}
