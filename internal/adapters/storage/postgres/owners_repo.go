package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettrackr/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `id, name, email, phone, password_hash, created_at, updated_at`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, o.ID, o.Name, o.Email, o.Phone, o.PasswordHash, o.CreatedAt, o.UpdatedAt)
	if isUniqueViolation(err) {
		return owners.ErrConflict
	}
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	err := execOne(ctx, r.db, owners.ErrNotFound, `
		UPDATE owners
		SET name = $2, email = $3, phone = $4, password_hash = $5, updated_at = $6
		WHERE id = $1
	`, o.ID, o.Name, o.Email, o.Phone, o.PasswordHash, o.UpdatedAt)
	if isUniqueViolation(err) {
		return owners.ErrConflict
	}
	return err
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, owners.ErrNotFound, `DELETE FROM owners WHERE id = $1`, id)
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	return r.getOne(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	return r.getOne(ctx, `SELECT `+ownerColumns+` FROM owners WHERE email = $1`, email)
}

func (r *OwnersRepo) getOne(ctx context.Context, query string, arg string) (owners.Owner, error) {
	var o owners.Owner
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&o.ID, &o.Name, &o.Email, &o.Phone, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}
