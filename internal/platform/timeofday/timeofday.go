// Package timeofday maneja horas del día "HH:MM" (24h, sin zona).
// Con cero a la izquierda el orden de strings coincide con el cronológico,
// y la agenda ordena directamente por el string.
package timeofday

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrInvalid = errors.New("time must be HH:MM")

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func Valid(s string) bool {
	return hhmm.MatchString(s)
}

// Normalize acepta "HH:MM" o "HH:MM:SS" (formato de LocalTime con segundos)
// y devuelve siempre "HH:MM".
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") && s[5] == ':' {
		if _, err := time.Parse("15:04:05", s); err != nil {
			return "", ErrInvalid
		}
		s = s[:5]
	}
	if !Valid(s) {
		return "", ErrInvalid
	}
	return s, nil
}

// Of formatea la hora local de t como "HH:MM".
func Of(t time.Time) string {
	return t.Format("15:04")
}
