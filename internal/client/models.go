package client

import "time"

// Los modelos reflejan el JSON del API tal cual; fechas como "YYYY-MM-DD"
// y horas como "HH:MM" (strings, sin zona horaria).

type Owner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type OwnerPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

type Pet struct {
	ID            string  `json:"id"`
	OwnerID       string  `json:"ownerId"`
	Name          string  `json:"name"`
	Species       string  `json:"species"`
	Breed         string  `json:"breed"`
	BirthDate     string  `json:"birthDate,omitempty"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	ActivityLevel string  `json:"activityLevel"`
	PhotoURL      string  `json:"photoUrl,omitempty"`
}

type PetInput struct {
	Name          string  `json:"name"`
	Species       string  `json:"species"`
	Breed         string  `json:"breed,omitempty"`
	BirthDate     string  `json:"birthDate,omitempty"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit,omitempty"`
	ActivityLevel string  `json:"activityLevel,omitempty"`
}

type PetPatch struct {
	Name          *string  `json:"name,omitempty"`
	Species       *string  `json:"species,omitempty"`
	Breed         *string  `json:"breed,omitempty"`
	BirthDate     *string  `json:"birthDate,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	WeightUnit    *string  `json:"weightUnit,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
}

type FeedingSchedule struct {
	ID           string  `json:"id"`
	PetID        string  `json:"petId"`
	Time         string  `json:"time"`
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
}

type FeedingInput struct {
	Time         string  `json:"time"`
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
}

type FeedingPatch struct {
	Time         *string  `json:"time,omitempty"`
	FoodType     *string  `json:"foodType,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	QuantityUnit *string  `json:"quantityUnit,omitempty"`
}

type Medication struct {
	ID               string  `json:"id"`
	PetID            string  `json:"petId"`
	Name             string  `json:"name"`
	DosageAmount     float64 `json:"dosageAmount"`
	DosageUnit       string  `json:"dosageUnit"`
	Frequency        string  `json:"frequency"`
	TimeToAdminister string  `json:"timeToAdminister"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"` // nil = en curso
}

type MedicationInput struct {
	Name             string  `json:"name"`
	DosageAmount     float64 `json:"dosageAmount"`
	DosageUnit       string  `json:"dosageUnit"`
	Frequency        string  `json:"frequency"`
	TimeToAdminister string  `json:"timeToAdminister"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate,omitempty"`
}

type MedicationPatch struct {
	Name             *string  `json:"name,omitempty"`
	DosageAmount     *float64 `json:"dosageAmount,omitempty"`
	DosageUnit       *string  `json:"dosageUnit,omitempty"`
	Frequency        *string  `json:"frequency,omitempty"`
	TimeToAdminister *string  `json:"timeToAdminister,omitempty"`
	StartDate        *string  `json:"startDate,omitempty"`
	EndDate          *string  `json:"endDate,omitempty"`
}

type VetVisit struct {
	ID             string  `json:"id"`
	PetID          string  `json:"petId"`
	VisitDate      string  `json:"visitDate"`
	NextVisitDate  *string `json:"nextVisitDate"`
	VetName        string  `json:"vetName"`
	ReasonForVisit string  `json:"reasonForVisit"`
	Notes          string  `json:"notes"`
}

type VetVisitInput struct {
	VisitDate      string `json:"visitDate"`
	NextVisitDate  string `json:"nextVisitDate,omitempty"`
	VetName        string `json:"vetName"`
	ReasonForVisit string `json:"reasonForVisit"`
	Notes          string `json:"notes,omitempty"`
}

type VetVisitPatch struct {
	VisitDate      *string `json:"visitDate,omitempty"`
	NextVisitDate  *string `json:"nextVisitDate,omitempty"`
	VetName        *string `json:"vetName,omitempty"`
	ReasonForVisit *string `json:"reasonForVisit,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}
