package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pettrackr/internal/domain/owners"
	"pettrackr/internal/ports/auth"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

const DefaultTTL = 24 * time.Hour

// OwnerDirectory es lo que sessions necesita de owners.
type OwnerDirectory interface {
	Authenticate(ctx context.Context, email, password string) (owners.Owner, error)
	GetByID(ctx context.Context, id string) (owners.Owner, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo Repository, dir OwnerDirectory, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:   repo,
		owners: dir,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Login valida credenciales y abre una sesión nueva.
// Devuelve owners.ErrInvalidCredentials tal cual para que el handler responda 401.
func (s *Service) Login(ctx context.Context, email, password string) (Session, owners.Owner, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, owners.Owner{}, owners.ErrInvalidCredentials
	}

	o, err := s.owners.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, owners.Owner{}, err
	}

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		OwnerID:   o.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return Session{}, owners.Owner{}, err
	}
	return sess, o, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		_ = s.repo.Delete(ctx, id)
		return Session{}, ErrExpired
	}
	return sess, nil
}

// Resolve implementa auth.SessionResolver. Si el owner ya no existe
// (cuenta borrada) la sesión se descarta.
// Solo sesión inexistente o vencida es ErrNoSession; una caída del store
// se devuelve tal cual para que no se confunda con "no logueado".
func (s *Service) Resolve(ctx context.Context, id string) (auth.Claims, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired) {
			return auth.Claims{}, auth.ErrNoSession
		}
		return auth.Claims{}, fmt.Errorf("resolving session: %w", err)
	}

	o, err := s.owners.GetByID(ctx, sess.OwnerID)
	if err != nil {
		if errors.Is(err, owners.ErrNotFound) {
			_ = s.repo.Delete(ctx, id)
			return auth.Claims{}, auth.ErrNoSession
		}
		return auth.Claims{}, err
	}

	return auth.Claims{UserID: o.ID, Email: o.Email, SessionID: sess.ID}, nil
}

// Logout es idempotente: borrar una sesión inexistente no es error.
func (s *Service) Logout(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) Me(ctx context.Context, ownerID string) (owners.Owner, error) {
	return s.owners.GetByID(ctx, ownerID)
}
