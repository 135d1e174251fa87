package session

import (
	"context"
	"errors"
	"sync"

	"pettrackr/internal/client"
)

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
)

// AuthAPI es la parte del cliente REST que usa la sesión.
type AuthAPI interface {
	Me(ctx context.Context) (client.Owner, error)
	Login(ctx context.Context, email, password string) (client.Owner, error)
	Logout(ctx context.Context) error
}

// Session es el estado de autenticación del lado cliente. Se pasa
// explícitamente a quien lo necesite (agregador, reminders, CLI).
type Session struct {
	api AuthAPI

	mu    sync.RWMutex
	state State
	owner client.Owner
}

func New(api AuthAPI) *Session {
	return &Session{api: api, state: StateUnauthenticated}
}

// Init re-deriva la sesión desde el server (GET /auth/me).
// 401 no es error: deja la sesión sin autenticar.
func (s *Session) Init(ctx context.Context) error {
	s.set(StateLoading, client.Owner{})

	o, err := s.api.Me(ctx)
	if err != nil {
		s.set(StateUnauthenticated, client.Owner{})
		if errors.Is(err, client.ErrUnauthorized) {
			return nil
		}
		return err
	}
	s.set(StateAuthenticated, o)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	s.set(StateLoading, client.Owner{})

	o, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.set(StateUnauthenticated, client.Owner{})
		return err
	}
	s.set(StateAuthenticated, o)
	return nil
}

// Logout siempre deja la sesión cerrada; el error del server se devuelve igual.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.set(StateUnauthenticated, client.Owner{})
	return err
}

// Expire fuerza el estado sin autenticar (p.ej. el server respondió 401).
func (s *Session) Expire() {
	s.set(StateUnauthenticated, client.Owner{})
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Owner() (client.Owner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, s.state == StateAuthenticated
}

func (s *Session) OwnerID() string {
	o, ok := s.Owner()
	if !ok {
		return ""
	}
	return o.ID
}

func (s *Session) set(st State, o client.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.owner = o
}
