package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettrackr/internal/domain/vetvisits"
)

type VetVisitsRepo struct {
	db *sql.DB
}

func NewVetVisitsRepo(db *sql.DB) *VetVisitsRepo {
	return &VetVisitsRepo{db: db}
}

const vetVisitColumns = `
	id, pet_id, visit_date, next_visit_date,
	vet_name, reason_for_visit, notes, created_at, updated_at`

func (r *VetVisitsRepo) Create(ctx context.Context, v vetvisits.VetVisit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_visits (`+vetVisitColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID, v.PetID, v.VisitDate, toNullDate(v.NextVisitDate),
		v.VetName, v.ReasonForVisit, v.Notes, v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (r *VetVisitsRepo) Update(ctx context.Context, v vetvisits.VetVisit) error {
	return execOne(ctx, r.db, vetvisits.ErrNotFound, `
		UPDATE vet_visits
		SET visit_date = $2, next_visit_date = $3, vet_name = $4,
			reason_for_visit = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`,
		v.ID, v.VisitDate, toNullDate(v.NextVisitDate), v.VetName,
		v.ReasonForVisit, v.Notes, v.UpdatedAt,
	)
}

func (r *VetVisitsRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, vetvisits.ErrNotFound, `DELETE FROM vet_visits WHERE id = $1`, id)
}

func (r *VetVisitsRepo) GetByID(ctx context.Context, id string) (vetvisits.VetVisit, error) {
	v, err := scanVetVisit(r.db.QueryRowContext(ctx, `SELECT `+vetVisitColumns+` FROM vet_visits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vetvisits.VetVisit{}, vetvisits.ErrNotFound
		}
		return vetvisits.VetVisit{}, err
	}
	return v, nil
}

func (r *VetVisitsRepo) ListByPet(ctx context.Context, petID string) ([]vetvisits.VetVisit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vetVisitColumns+`
		FROM vet_visits
		WHERE pet_id = $1
		ORDER BY visit_date DESC, created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vetvisits.VetVisit, 0)
	for rows.Next() {
		v, err := scanVetVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VetVisitsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vet_visits WHERE pet_id = $1`, petID)
	return err
}

func scanVetVisit(s rowScanner) (vetvisits.VetVisit, error) {
	var (
		v    vetvisits.VetVisit
		next sql.NullTime
	)
	if err := s.Scan(
		&v.ID, &v.PetID, &v.VisitDate, &next,
		&v.VetName, &v.ReasonForVisit, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return vetvisits.VetVisit{}, err
	}
	v.NextVisitDate = fromNullDate(next)
	return v, nil
}
