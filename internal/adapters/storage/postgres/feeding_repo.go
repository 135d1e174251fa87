package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettrackr/internal/domain/feeding"
)

type FeedingRepo struct {
	db *sql.DB
}

func NewFeedingRepo(db *sql.DB) *FeedingRepo {
	return &FeedingRepo{db: db}
}

const feedingColumns = `id, pet_id, time_of_day, food_type, quantity, quantity_unit, created_at, updated_at`

func (r *FeedingRepo) Create(ctx context.Context, s feeding.Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feeding_schedules (`+feedingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, s.ID, s.PetID, s.Time, s.FoodType, s.Quantity, string(s.QuantityUnit), s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *FeedingRepo) Update(ctx context.Context, s feeding.Schedule) error {
	return execOne(ctx, r.db, feeding.ErrNotFound, `
		UPDATE feeding_schedules
		SET time_of_day = $2, food_type = $3, quantity = $4, quantity_unit = $5, updated_at = $6
		WHERE id = $1
	`, s.ID, s.Time, s.FoodType, s.Quantity, string(s.QuantityUnit), s.UpdatedAt)
}

func (r *FeedingRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, feeding.ErrNotFound, `DELETE FROM feeding_schedules WHERE id = $1`, id)
}

func (r *FeedingRepo) GetByID(ctx context.Context, id string) (feeding.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowContext(ctx, `SELECT `+feedingColumns+` FROM feeding_schedules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return feeding.Schedule{}, feeding.ErrNotFound
		}
		return feeding.Schedule{}, err
	}
	return s, nil
}

func (r *FeedingRepo) ListByPet(ctx context.Context, petID string) ([]feeding.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+feedingColumns+`
		FROM feeding_schedules
		WHERE pet_id = $1
		ORDER BY time_of_day ASC, created_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *FeedingRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feeding_schedules WHERE pet_id = $1`, petID)
	return err
}

func scanSchedule(s rowScanner) (feeding.Schedule, error) {
	var (
		sc   feeding.Schedule
		unit string
	)
	if err := s.Scan(&sc.ID, &sc.PetID, &sc.Time, &sc.FoodType, &sc.Quantity, &unit, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return feeding.Schedule{}, err
	}
	sc.QuantityUnit = feeding.QuantityUnit(unit)
	return sc, nil
}
