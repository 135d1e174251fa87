package feeding

import "time"

// QuantityUnit de la porción.
// @Enum CUPS, GRAMS, OUNCES, CANS
type QuantityUnit string

const (
	UnitCups   QuantityUnit = "CUPS"
	UnitGrams  QuantityUnit = "GRAMS"
	UnitOunces QuantityUnit = "OUNCES"
	UnitCans   QuantityUnit = "CANS"
)

func (u QuantityUnit) Valid() bool {
	switch u {
	case UnitCups, UnitGrams, UnitOunces, UnitCans:
		return true
	}
	return false
}

// Schedule es una comida diaria de una mascota. Time es "HH:MM" 24h, sin zona:
// el orden lexicográfico coincide con el cronológico.
type Schedule struct {
	ID    string
	PetID string

	Time         string
	FoodType     string
	Quantity     float64
	QuantityUnit QuantityUnit

	CreatedAt time.Time
	UpdatedAt time.Time
}
