package client

import (
	"errors"
	"fmt"
	"net/http"

	"pettrackr/internal/platform/httpclient"
)

// Errores que ven los callers. Envuelven al *httpclient.HTTPError original,
// así que errors.As sigue dando acceso al status y al body.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch httpclient.StatusCode(err) {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		// 5xx, otros 4xx y fallas de transporte van tal cual
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func required(name, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", ErrBadRequest, name)
	}
	return nil
}
