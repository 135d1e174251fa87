package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pettrackr/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_id,
	name, species, breed,
	birth_date, weight, weight_unit, activity_level,
	photo_url, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		toNullDate(p.BirthDate),
		p.Weight,
		string(p.WeightUnit),
		string(p.ActivityLevel),
		p.PhotoURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return execOne(ctx, r.db, pets.ErrNotFound, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			birth_date = $5,
			weight = $6,
			weight_unit = $7,
			activity_level = $8,
			photo_url = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullDate(p.BirthDate),
		p.Weight,
		string(p.WeightUnit),
		string(p.ActivityLevel),
		p.PhotoURL,
		p.UpdatedAt,
	)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, pets.ErrNotFound, `DELETE FROM pets WHERE id = $1`, id)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var (
		p        pets.Pet
		bd       sql.NullTime
		unit     string
		activity string
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&bd,
		&p.Weight,
		&unit,
		&activity,
		&p.PhotoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	// birth_date es DATE; pgx lo mapea a time.Time a medianoche UTC
	p.BirthDate = fromNullDate(bd)
	p.WeightUnit = pets.WeightUnit(unit)
	p.ActivityLevel = pets.ActivityLevel(activity)
	return p, nil
}
