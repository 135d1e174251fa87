package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pettrackr/internal/platform/timeofday"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name             string
	DosageAmount     float64
	DosageUnit       string
	Frequency        string
	TimeToAdminister string
	StartDate        time.Time
	EndDate          *time.Time
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(petID) == "" {
		return Medication{}, ErrInvalidInput
	}

	now := s.now()
	m := Medication{
		ID:               uuid.NewString(),
		PetID:            petID,
		Name:             strings.TrimSpace(in.Name),
		DosageAmount:     in.DosageAmount,
		DosageUnit:       DosageUnit(strings.ToUpper(strings.TrimSpace(in.DosageUnit))),
		Frequency:        strings.TrimSpace(in.Frequency),
		TimeToAdminister: in.TimeToAdminister,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := validate(&m); err != nil {
		return Medication{}, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, petID string) ([]Medication, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Medication{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, petID, id string) (Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	if m.PetID != petID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

// OptionalDate distingue "ausente" de "null" (null = tratamiento en curso).
type OptionalDate struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	Name             *string
	DosageAmount     *float64
	DosageUnit       *string
	Frequency        *string
	TimeToAdminister *string
	StartDate        *time.Time
	EndDate          OptionalDate
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (Medication, error) {
	m, err := s.Get(ctx, petID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.DosageAmount != nil {
		m.DosageAmount = *in.DosageAmount
	}
	if in.DosageUnit != nil {
		m.DosageUnit = DosageUnit(strings.ToUpper(strings.TrimSpace(*in.DosageUnit)))
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.TimeToAdminister != nil {
		m.TimeToAdminister = *in.TimeToAdminister
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.EndDate.Present {
		m.EndDate = in.EndDate.Value
	}
	if err := validate(&m); err != nil {
		return Medication{}, err
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	if _, err := s.Get(ctx, petID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByPet implementa pets.Dependent.
func (s *Service) DeleteByPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}

func validate(m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if m.DosageAmount <= 0 {
		return fmt.Errorf("%w: dosageAmount must be > 0", ErrInvalidInput)
	}
	if !m.DosageUnit.Valid() {
		return fmt.Errorf("%w: invalid dosageUnit %q", ErrInvalidInput, m.DosageUnit)
	}
	if m.Frequency == "" {
		return fmt.Errorf("%w: frequency is required", ErrInvalidInput)
	}
	t, err := timeofday.Normalize(m.TimeToAdminister)
	if err != nil {
		return fmt.Errorf("%w: timeToAdminister must be HH:MM", ErrInvalidInput)
	}
	m.TimeToAdminister = t
	if m.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalidInput)
	}
	return nil
}
