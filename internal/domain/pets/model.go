package pets

import "time"

// WeightUnit del peso registrado.
// @Enum KG, LB
type WeightUnit string

const (
	WeightKG WeightUnit = "KG"
	WeightLB WeightUnit = "LB"
)

// ActivityLevel orienta las porciones de comida.
// @Enum LOW, MODERATE, HIGH
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "LOW"
	ActivityModerate ActivityLevel = "MODERATE"
	ActivityHigh     ActivityLevel = "HIGH"
)

func (u WeightUnit) Valid() bool {
	return u == WeightKG || u == WeightLB
}

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityLow, ActivityModerate, ActivityHigh:
		return true
	}
	return false
}

// Pet representa el perfil de una mascota. Pertenece a un único owner.
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	Species string // texto libre: Dog, Cat, Rabbit...
	Breed   string

	BirthDate *time.Time

	Weight        float64
	WeightUnit    WeightUnit
	ActivityLevel ActivityLevel

	// PhotoURL es la ruta pública (/uploads/...) o vacío.
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
