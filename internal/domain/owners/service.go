package owners

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("owner not found")
	ErrConflict           = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLen = 8

// PetRemover borra las mascotas del owner (y sus registros) antes de borrar la cuenta.
// Lo implementa pets.Service; la interfaz evita el import cruzado.
type PetRemover interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

type Service struct {
	repo Repository
	pets PetRemover
	now  func() time.Time
	cost int
}

func NewService(repo Repository, pets PetRemover) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

// SetPetRemover cierra el ciclo owners <-> pets al armar el router.
func (s *Service) SetPetRemover(p PetRemover) {
	s.pets = p
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Owner, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || phone == "" || !validEmail(email) {
		return Owner{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return Owner{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Owner{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return Owner{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Owner{}, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now()
	o := Owner{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// Authenticate no distingue "email desconocido" de "password incorrecta".
func (s *Service) Authenticate(ctx context.Context, email, password string) (Owner, error) {
	o, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Owner{}, ErrInvalidCredentials
		}
		return Owner{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)); err != nil {
		return Owner{}, ErrInvalidCredentials
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Exists lo usa pets para responder 404 cuando el owner no existe.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Owner{}, ErrInvalidInput
		}
		o.Name = v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		if v == "" {
			return Owner{}, ErrInvalidInput
		}
		o.Phone = v
	}
	if in.Email != nil {
		v := normalizeEmail(*in.Email)
		if !validEmail(v) {
			return Owner{}, ErrInvalidInput
		}
		if v != o.Email {
			if other, err := s.repo.GetByEmail(ctx, v); err == nil && other.ID != o.ID {
				return Owner{}, ErrConflict
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return Owner{}, err
			}
		}
		o.Email = v
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return Owner{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return Owner{}, fmt.Errorf("hashing password: %w", err)
		}
		o.PasswordHash = string(hash)
	}

	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if s.pets != nil {
		if err := s.pets.DeleteByOwner(ctx, id); err != nil {
			return fmt.Errorf("deleting pets of owner: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
