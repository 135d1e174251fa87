package dashboard

import "pettrackr/internal/client"

type EntryKind string

const (
	EntryFeeding    EntryKind = "feeding"
	EntryMedication EntryKind = "medication"
)

// AgendaItem es una comida o una medicación etiquetada con su mascota.
// Time es "HH:MM" (o vacío) y es la clave de orden para ambos tipos.
type AgendaItem struct {
	Kind    EntryKind
	PetID   string
	PetName string
	Time    string

	Feeding    *client.FeedingSchedule
	Medication *client.Medication
}

// AbsorbedFailure es una sub-carga que falló y se reemplazó por lista vacía.
type AbsorbedFailure struct {
	PetID string
	Kind  EntryKind
	Err   error
}

type Dashboard struct {
	Pets   []client.Pet
	Agenda []AgendaItem

	// Absorbed no se muestra al usuario; queda para logs y tests.
	Absorbed []AbsorbedFailure
}

func empty() Dashboard {
	return Dashboard{Pets: []client.Pet{}, Agenda: []AgendaItem{}}
}

// Result es el resultado de una sub-carga: Items o Err, nunca ambos.
type Result[T any] struct {
	Items []T
	Err   error
}

// OrEmpty aplica la política de absorción: error => sin entradas.
func (r Result[T]) OrEmpty() []T {
	if r.Err != nil {
		return nil
	}
	return r.Items
}
