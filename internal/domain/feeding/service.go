package feeding

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
	ErrNotFound     = errors.New("feeding schedule not found")
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
	Time         string
	FoodType     string
	Quantity     float64
	QuantityUnit string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Schedule, error) {
	if strings.TrimSpace(petID) == "" {
		return Schedule{}, ErrInvalidInput
	}

	now := s.now()
	sc := Schedule{
		ID:           uuid.NewString(),
		PetID:        petID,
		Time:         in.Time,
		FoodType:     strings.TrimSpace(in.FoodType),
		Quantity:     in.Quantity,
		QuantityUnit: QuantityUnit(strings.ToUpper(strings.TrimSpace(in.QuantityUnit))),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validate(&sc); err != nil {
		return Schedule{}, err
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

func (s *Service) List(ctx context.Context, petID string) ([]Schedule, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Schedule{}
	}
	return items, nil
}

// Get exige que el registro sea de la mascota del path.
func (s *Service) Get(ctx context.Context, petID, id string) (Schedule, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	if sc.PetID != petID {
		return Schedule{}, ErrNotFound
	}
	return sc, nil
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Time         *string
	FoodType     *string
	Quantity     *float64
	QuantityUnit *string
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (Schedule, error) {
	sc, err := s.Get(ctx, petID, id)
	if err != nil {
		return Schedule{}, err
	}

	if in.Time != nil {
		sc.Time = *in.Time
	}
	if in.FoodType != nil {
		sc.FoodType = strings.TrimSpace(*in.FoodType)
	}
	if in.Quantity != nil {
		sc.Quantity = *in.Quantity
	}
	if in.QuantityUnit != nil {
		sc.QuantityUnit = QuantityUnit(strings.ToUpper(strings.TrimSpace(*in.QuantityUnit)))
	}
	if err := validate(&sc); err != nil {
		return Schedule{}, err
	}

	sc.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
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

// validate normaliza Time in place.
func validate(sc *Schedule) error {
	t, err := timeofday.Normalize(sc.Time)
	if err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	sc.Time = t

	if sc.FoodType == "" {
		return fmt.Errorf("%w: foodType is required", ErrInvalidInput)
	}
	if sc.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrInvalidInput)
	}
	if !sc.QuantityUnit.Valid() {
		return fmt.Errorf("%w: unit must be CUPS, GRAMS, OUNCES or CANS", ErrInvalidInput)
	}
	return nil
}
