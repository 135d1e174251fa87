// Package seed carga datos de demo (dos owners con mascotas, comidas,
// medicaciones y visitas) pasando por los services, así se validan igual
// que un alta por HTTP.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pettrackr/internal/domain/feeding"
	"pettrackr/internal/domain/medications"
	"pettrackr/internal/domain/owners"
	"pettrackr/internal/domain/pets"
	"pettrackr/internal/domain/vetvisits"
	"pettrackr/internal/platform/logger"
)

// DemoPassword es la password de todas las cuentas de demo.
const DemoPassword = "pettrackr-demo"

type OwnerCreator interface {
	Register(ctx context.Context, in owners.RegisterInput) (owners.Owner, error)
}

type PetCreator interface {
	Create(ctx context.Context, ownerID string, in pets.CreateInput) (pets.Pet, error)
}

type FeedingCreator interface {
	Create(ctx context.Context, petID string, in feeding.CreateInput) (feeding.Schedule, error)
}

type MedicationCreator interface {
	Create(ctx context.Context, petID string, in medications.CreateInput) (medications.Medication, error)
}

type VetVisitCreator interface {
	Create(ctx context.Context, petID string, in vetvisits.CreateInput) (vetvisits.VetVisit, error)
}

type Services struct {
	Owners      OwnerCreator
	Pets        PetCreator
	Feeding     FeedingCreator
	Medications MedicationCreator
	VetVisits   VetVisitCreator
}

// Summary cuenta lo creado. Skipped: la demo ya estaba cargada.
type Summary struct {
	Owners      int
	Pets        int
	Feeding     int
	Medications int
	VetVisits   int
	Skipped     bool
}

type demoPet struct {
	in      pets.CreateInput
	feeding []feeding.CreateInput
	meds    []medications.CreateInput
	visits  []vetvisits.CreateInput
}

type demoOwner struct {
	in   owners.RegisterInput
	pets []demoPet
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func demoData() []demoOwner {
	kibble := "Dry kibble - Blue Buffalo Adult"
	wet := "Wet food - Fancy Feast"
	purina := "Purina Pro Plan Adult"

	return []demoOwner{
		{
			in: owners.RegisterInput{Name: "John Smith", Email: "john.smith@example.com", Phone: "555-0101", Password: DemoPassword},
			pets: []demoPet{
				{
					in: pets.CreateInput{Name: "Max", Species: "Dog", Breed: "Golden Retriever", BirthDate: dayPtr(2021, 6, 15), Weight: 32.5, WeightUnit: "KG", ActivityLevel: "HIGH"},
					feeding: []feeding.CreateInput{
						{Time: "07:30", FoodType: kibble, Quantity: 2, QuantityUnit: "CUPS"},
						{Time: "18:00", FoodType: kibble, Quantity: 2, QuantityUnit: "CUPS"},
					},
					meds: []medications.CreateInput{
						{Name: "Heartgard Plus", DosageAmount: 1, DosageUnit: "TABLETS", Frequency: "Monthly", TimeToAdminister: "09:00", StartDate: day(2024, 1, 1)},
						{Name: "Carprofen", DosageAmount: 50, DosageUnit: "MG", Frequency: "Twice daily", TimeToAdminister: "08:00", StartDate: day(2024, 12, 1), EndDate: dayPtr(2024, 12, 14)},
					},
					visits: []vetvisits.CreateInput{
						{VisitDate: day(2024, 11, 10), NextVisitDate: dayPtr(2025, 11, 10), VetName: "Dr. Emily Parker", ReasonForVisit: "Annual checkup", Notes: "Healthy, all vaccinations up to date. Weight stable."},
						{VisitDate: day(2024, 9, 5), VetName: "Dr. Emily Parker", ReasonForVisit: "Limping on front left paw", Notes: "Mild sprain. Prescribed Carprofen for 2 weeks. Rest recommended."},
					},
				},
				{
					in: pets.CreateInput{Name: "Luna", Species: "Cat", Breed: "Siamese", BirthDate: dayPtr(2022, 3, 10), Weight: 4.2, WeightUnit: "KG", ActivityLevel: "MODERATE"},
					feeding: []feeding.CreateInput{
						{Time: "08:00", FoodType: wet, Quantity: 1, QuantityUnit: "CANS"},
						{Time: "19:00", FoodType: wet, Quantity: 1, QuantityUnit: "CANS"},
					},
					visits: []vetvisits.CreateInput{
						{VisitDate: day(2024, 10, 15), NextVisitDate: dayPtr(2025, 10, 15), VetName: "Dr. Michael Chen", ReasonForVisit: "Dental cleaning", Notes: "Dental cleaning completed. Two teeth extracted. Recovery normal."},
					},
				},
			},
		},
		{
			in: owners.RegisterInput{Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Phone: "555-0202", Password: DemoPassword},
			pets: []demoPet{
				{
					in: pets.CreateInput{Name: "Buddy", Species: "Dog", Breed: "Labrador", BirthDate: dayPtr(2019, 8, 20), Weight: 75, WeightUnit: "LB", ActivityLevel: "HIGH"},
					feeding: []feeding.CreateInput{
						{Time: "06:30", FoodType: purina, Quantity: 3.5, QuantityUnit: "CUPS"},
						{Time: "17:30", FoodType: purina, Quantity: 3.5, QuantityUnit: "CUPS"},
					},
					meds: []medications.CreateInput{
						{Name: "Flea & Tick Prevention", DosageAmount: 1, DosageUnit: "UNITS", Frequency: "Monthly", TimeToAdminister: "10:00", StartDate: day(2024, 1, 1)},
					},
				},
				{
					in: pets.CreateInput{Name: "Whiskers", Species: "Cat", Breed: "Maine Coon", BirthDate: dayPtr(2020, 11, 5), Weight: 15, WeightUnit: "LB", ActivityLevel: "LOW"},
				},
			},
		},
	}
}

// Run carga la demo. Si la primera cuenta ya existe no toca nada.
func Run(ctx context.Context, svc Services, log logger.Logger) (Summary, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var sum Summary
	for i, demo := range demoData() {
		o, err := svc.Owners.Register(ctx, demo.in)
		if errors.Is(err, owners.ErrConflict) {
			if i == 0 {
				log.Info("seed.skipped", map[string]any{"email": demo.in.Email})
				return Summary{Skipped: true}, nil
			}
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("seeding owner %s: %w", demo.in.Email, err)
		}
		sum.Owners++

		for _, dp := range demo.pets {
			p, err := svc.Pets.Create(ctx, o.ID, dp.in)
			if err != nil {
				return sum, fmt.Errorf("seeding pet %s: %w", dp.in.Name, err)
			}
			sum.Pets++

			for _, in := range dp.feeding {
				if _, err := svc.Feeding.Create(ctx, p.ID, in); err != nil {
					return sum, fmt.Errorf("seeding feeding for %s: %w", p.Name, err)
				}
				sum.Feeding++
			}
			for _, in := range dp.meds {
				if _, err := svc.Medications.Create(ctx, p.ID, in); err != nil {
					return sum, fmt.Errorf("seeding medication for %s: %w", p.Name, err)
				}
				sum.Medications++
			}
			for _, in := range dp.visits {
				if _, err := svc.VetVisits.Create(ctx, p.ID, in); err != nil {
					return sum, fmt.Errorf("seeding vet visit for %s: %w", p.Name, err)
				}
				sum.VetVisits++
			}
		}
	}

	log.Info("seed.done", map[string]any{
		"owners":      sum.Owners,
		"pets":        sum.Pets,
		"feeding":     sum.Feeding,
		"medications": sum.Medications,
		"vet_visits":  sum.VetVisits,
	})
	return sum, nil
}
