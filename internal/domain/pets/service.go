package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"pettrackr/internal/domain/owners"
	"pettrackr/internal/platform/imaging"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("pet not found")
	ErrOwnerNotFound = errors.New("owner not found")
)

// OwnerDirectory: pets consulta owners para el 404 del listado y para el QR.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (owners.Owner, error)
}

type Service struct {
	repo       Repository
	owners     OwnerDirectory
	photos     PhotoStore
	dependents []Dependent
	now        func() time.Time
}

func NewService(repo Repository, dir OwnerDirectory, photos PhotoStore) *Service {
	return &Service{
		repo:   repo,
		owners: dir,
		photos: photos,
		now:    time.Now,
	}
}

// AddDependent registra módulos hijos para el borrado en cascada.
// Se llama al armar el router, antes de servir requests.
func (s *Service) AddDependent(d ...Dependent) {
	s.dependents = append(s.dependents, d...)
}

type CreateInput struct {
	Name          string
	Species       string
	Breed         string
	BirthDate     *time.Time
	Weight        float64
	WeightUnit    string
	ActivityLevel string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(in.Name),
		Species:       strings.TrimSpace(in.Species),
		Breed:         strings.TrimSpace(in.Breed),
		BirthDate:     in.BirthDate,
		Weight:        in.Weight,
		WeightUnit:    WeightUnit(strings.ToUpper(strings.TrimSpace(in.WeightUnit))),
		ActivityLevel: ActivityLevel(strings.ToUpper(strings.TrimSpace(in.ActivityLevel))),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.WeightUnit == "" {
		p.WeightUnit = WeightKG
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = ActivityModerate
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetOwned devuelve ErrNotFound también cuando la mascota es de otro owner:
// no revelamos que el id existe.
func (s *Service) GetOwned(ctx context.Context, ownerID, petID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != ownerID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// ListByOwner: owner inexistente => ErrOwnerNotFound; owner sin mascotas => lista vacía.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// OptionalDate distingue "campo ausente" de "campo en null" en un PATCH.
type OptionalDate struct {
	Present bool
	Value   *time.Time
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name          *string
	Species       *string
	Breed         *string
	BirthDate     OptionalDate
	Weight        *float64
	WeightUnit    *string
	ActivityLevel *string
}

func (s *Service) Update(ctx context.Context, ownerID, petID string, in UpdateInput) (Pet, error) {
	p, err := s.GetOwned(ctx, ownerID, petID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.WeightUnit != nil {
		p.WeightUnit = WeightUnit(strings.ToUpper(strings.TrimSpace(*in.WeightUnit)))
	}
	if in.ActivityLevel != nil {
		p.ActivityLevel = ActivityLevel(strings.ToUpper(strings.TrimSpace(*in.ActivityLevel)))
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra primero los registros hijos y la foto, después la mascota.
func (s *Service) Delete(ctx context.Context, ownerID, petID string) error {
	p, err := s.GetOwned(ctx, ownerID, petID)
	if err != nil {
		return err
	}
	return s.remove(ctx, p)
}

// DeleteByOwner implementa owners.PetRemover.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID string) error {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, p := range items {
		if err := s.remove(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) remove(ctx context.Context, p Pet) error {
	for _, d := range s.dependents {
		if err := d.DeleteByPet(ctx, p.ID); err != nil {
			return fmt.Errorf("cascade delete for pet %s: %w", p.ID, err)
		}
	}
	if p.PhotoURL != "" && s.photos != nil {
		_ = s.photos.Remove(ctx, p.PhotoURL)
	}
	return s.repo.Delete(ctx, p.ID)
}

// SetPhoto procesa la imagen (valida formato, achica, re-encodea JPEG),
// la guarda y reemplaza la foto anterior.
func (s *Service) SetPhoto(ctx context.Context, ownerID, petID string, r io.Reader) (Pet, error) {
	if s.photos == nil {
		return Pet{}, errors.New("photo storage not configured")
	}

	p, err := s.GetOwned(ctx, ownerID, petID)
	if err != nil {
		return Pet{}, err
	}

	img, err := imaging.Normalize(r, imaging.Options{})
	if err != nil {
		// formato no soportado, imagen corrupta o gigante: es culpa del upload
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	name := fmt.Sprintf("%s_%d.jpg", p.ID, now.UnixMilli())
	url, err := s.photos.Save(ctx, name, img.Data)
	if err != nil {
		return Pet{}, fmt.Errorf("saving photo: %w", err)
	}

	previous := p.PhotoURL
	p.PhotoURL = url
	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		_ = s.photos.Remove(ctx, url)
		return Pet{}, err
	}
	if previous != "" && previous != url {
		_ = s.photos.Remove(ctx, previous)
	}
	return p, nil
}

func (s *Service) ensureOwner(ctx context.Context, ownerID string) error {
	if s.owners == nil {
		return nil
	}
	if _, err := s.owners.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, owners.ErrNotFound) {
			return ErrOwnerNotFound
		}
		return err
	}
	return nil
}

func (s *Service) validate(p Pet) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Species == "" {
		return fmt.Errorf("%w: species is required", ErrInvalidInput)
	}
	if p.Weight < 0 {
		return fmt.Errorf("%w: weight must be >= 0", ErrInvalidInput)
	}
	if !p.WeightUnit.Valid() {
		return fmt.Errorf("%w: weightUnit must be KG or LB", ErrInvalidInput)
	}
	if !p.ActivityLevel.Valid() {
		return fmt.Errorf("%w: activityLevel must be LOW, MODERATE or HIGH", ErrInvalidInput)
	}
	if p.BirthDate != nil && p.BirthDate.After(s.now()) {
		return fmt.Errorf("%w: birthDate cannot be in the future", ErrInvalidInput)
	}
	return nil
}
