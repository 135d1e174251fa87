package dashboard

import (
	"errors"

	"pettrackr/internal/client"
)

var (
	ErrInvalidOwner   = errors.New("dashboard: owner id is required")
	ErrSessionExpired = errors.New("dashboard: session expired")
	ErrConnectivity   = errors.New("dashboard: could not reach the server")
)

// ErrorKind es lo que la vista necesita saber de un error de carga.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorNotFound
	ErrorSessionExpired
	ErrorConnectivity
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorNotFound:
		return "not_found"
	case ErrorSessionExpired:
		return "session_expired"
	default:
		return "connectivity_or_server_error"
	}
}

// Kind clasifica err. Cualquier cosa que no sea not-found o sesión vencida
// se trata como problema de conectividad/servidor (reintentable).
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, ErrSessionExpired), errors.Is(err, client.ErrUnauthorized):
		return ErrorSessionExpired
	case errors.Is(err, client.ErrNotFound):
		return ErrorNotFound
	default:
		return ErrorConnectivity
	}
}

// UserMessage devuelve el texto para el usuario; vacío si no hay nada que mostrar.
func UserMessage(err error) string {
	switch Kind(err) {
	case ErrorSessionExpired:
		return "Your session has expired. Please log in again."
	case ErrorConnectivity:
		return "We couldn't load your dashboard. Check your connection and try again."
	default:
		return ""
	}
}
