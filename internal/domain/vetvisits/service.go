package vetvisits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vet visit not found")
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
	VisitDate      time.Time
	NextVisitDate  *time.Time
	VetName        string
	ReasonForVisit string
	Notes          string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (VetVisit, error) {
	if strings.TrimSpace(petID) == "" {
		return VetVisit{}, ErrInvalidInput
	}

	now := s.now()
	v := VetVisit{
		ID:             uuid.NewString(),
		PetID:          petID,
		VisitDate:      in.VisitDate,
		NextVisitDate:  in.NextVisitDate,
		VetName:        strings.TrimSpace(in.VetName),
		ReasonForVisit: strings.TrimSpace(in.ReasonForVisit),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validate(v); err != nil {
		return VetVisit{}, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, petID string) ([]VetVisit, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []VetVisit{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, petID, id string) (VetVisit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return VetVisit{}, err
	}
	if v.PetID != petID {
		return VetVisit{}, ErrNotFound
	}
	return v, nil
}

// OptionalDate distingue "ausente" de "null" (null = sin próximo turno).
type OptionalDate struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	VisitDate      *time.Time
	NextVisitDate  OptionalDate
	VetName        *string
	ReasonForVisit *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, petID, id string, in UpdateInput) (VetVisit, error) {
	v, err := s.Get(ctx, petID, id)
	if err != nil {
		return VetVisit{}, err
	}

	if in.VisitDate != nil {
		v.VisitDate = *in.VisitDate
	}
	if in.NextVisitDate.Present {
		v.NextVisitDate = in.NextVisitDate.Value
	}
	if in.VetName != nil {
		v.VetName = strings.TrimSpace(*in.VetName)
	}
	if in.ReasonForVisit != nil {
		v.ReasonForVisit = strings.TrimSpace(*in.ReasonForVisit)
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := validate(v); err != nil {
		return VetVisit{}, err
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
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

func validate(v VetVisit) error {
	if v.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate is required", ErrInvalidInput)
	}
	if v.VetName == "" {
		return fmt.Errorf("%w: vetName is required", ErrInvalidInput)
	}
	if v.ReasonForVisit == "" {
		return fmt.Errorf("%w: reasonForVisit is required", ErrInvalidInput)
	}
	if v.NextVisitDate != nil && v.NextVisitDate.Before(v.VisitDate) {
		return fmt.Errorf("%w: nextVisitDate cannot be before visitDate", ErrInvalidInput)
	}
	return nil
}
