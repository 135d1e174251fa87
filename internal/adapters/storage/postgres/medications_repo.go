package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettrackr/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, pet_id, name, dosage_amount, dosage_unit, frequency,
	time_to_administer, start_date, end_date, created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		m.ID, m.PetID, m.Name, m.DosageAmount, string(m.DosageUnit), m.Frequency,
		m.TimeToAdminister, m.StartDate, toNullDate(m.EndDate), m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	return execOne(ctx, r.db, medications.ErrNotFound, `
		UPDATE medications
		SET
			name = $2,
			dosage_amount = $3,
			dosage_unit = $4,
			frequency = $5,
			time_to_administer = $6,
			start_date = $7,
			end_date = $8,
			updated_at = $9
		WHERE id = $1
	`,
		m.ID, m.Name, m.DosageAmount, string(m.DosageUnit), m.Frequency,
		m.TimeToAdminister, m.StartDate, toNullDate(m.EndDate), m.UpdatedAt,
	)
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, medications.ErrNotFound, `DELETE FROM medications WHERE id = $1`, id)
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	m, err := scanMedication(r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, medications.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPet(ctx context.Context, petID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE pet_id = $1
		ORDER BY time_to_administer ASC, created_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE pet_id = $1`, petID)
	return err
}

func scanMedication(s rowScanner) (medications.Medication, error) {
	var (
		m    medications.Medication
		unit string
		end  sql.NullTime
	)
	if err := s.Scan(
		&m.ID, &m.PetID, &m.Name, &m.DosageAmount, &unit, &m.Frequency,
		&m.TimeToAdminister, &m.StartDate, &end, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.DosageUnit = medications.DosageUnit(unit)
	m.EndDate = fromNullDate(end)
	return m, nil
}
