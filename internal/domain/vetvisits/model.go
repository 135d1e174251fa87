package vetvisits

import "time"

// VetVisit registra una consulta; NextVisitDate es el próximo turno (opcional).
type VetVisit struct {
	ID    string
	PetID string

	VisitDate     time.Time
	NextVisitDate *time.Time

	VetName        string
	ReasonForVisit string
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
