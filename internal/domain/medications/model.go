package medications

import "time"

// DosageUnit.
// @Enum MG, ML, TABLETS, CAPSULES, DROPS, UNITS, TEASPOONS
type DosageUnit string

const (
	UnitMG        DosageUnit = "MG"
	UnitML        DosageUnit = "ML"
	UnitTablets   DosageUnit = "TABLETS"
	UnitCapsules  DosageUnit = "CAPSULES"
	UnitDrops     DosageUnit = "DROPS"
	UnitUnits     DosageUnit = "UNITS"
	UnitTeaspoons DosageUnit = "TEASPOONS"
)

func (u DosageUnit) Valid() bool {
	switch u {
	case UnitMG, UnitML, UnitTablets, UnitCapsules, UnitDrops, UnitUnits, UnitTeaspoons:
		return true
	}
	return false
}

// Medication es un tratamiento de una mascota. EndDate nil = en curso.
type Medication struct {
	ID    string
	PetID string

	Name             string
	DosageAmount     float64
	DosageUnit       DosageUnit
	Frequency        string // texto libre: "twice daily", "every 8 hours"...
	TimeToAdminister string // HH:MM

	StartDate time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
