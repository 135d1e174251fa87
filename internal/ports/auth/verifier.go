package auth

import (
	"context"
	"errors"
)

// ErrNoSession: la cookie no corresponde a una sesión vigente.
var ErrNoSession = errors.New("no active session")

// SessionResolver traduce el id de sesión (cookie) a claims.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (Claims, error)
}
