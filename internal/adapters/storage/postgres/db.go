package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema es idempotente; las FK con ON DELETE CASCADE son la red de seguridad
// del borrado en cascada que ya hacen los services.
// Las horas van como TEXT "HH:MM" para que ORDER BY coincida con la agenda.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id             UUID PRIMARY KEY,
		owner_id       UUID NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		species        TEXT NOT NULL,
		breed          TEXT NOT NULL DEFAULT '',
		birth_date     DATE,
		weight         DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (weight >= 0),
		weight_unit    TEXT NOT NULL,
		activity_level TEXT NOT NULL,
		photo_url      TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS feeding_schedules (
		id            UUID PRIMARY KEY,
		pet_id        UUID NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		time_of_day   TEXT NOT NULL,
		food_type     TEXT NOT NULL,
		quantity      DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
		quantity_unit TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS feeding_pet_idx ON feeding_schedules (pet_id, time_of_day)`,
	`CREATE TABLE IF NOT EXISTS medications (
		id                 UUID PRIMARY KEY,
		pet_id             UUID NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		dosage_amount      DOUBLE PRECISION NOT NULL CHECK (dosage_amount > 0),
		dosage_unit        TEXT NOT NULL,
		frequency          TEXT NOT NULL,
		time_to_administer TEXT NOT NULL,
		start_date         DATE NOT NULL,
		end_date           DATE,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS medications_pet_idx ON medications (pet_id, time_to_administer)`,
	`CREATE TABLE IF NOT EXISTS vet_visits (
		id               UUID PRIMARY KEY,
		pet_id           UUID NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		visit_date       DATE NOT NULL,
		next_visit_date  DATE,
		vet_name         TEXT NOT NULL,
		reason_for_visit TEXT NOT NULL,
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS vet_visits_pet_idx ON vet_visits (pet_id, visit_date DESC)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullDate(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// execOne corre un UPDATE/DELETE y devuelve notFound si no tocó filas.
func execOne(ctx context.Context, db *sql.DB, notFound error, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notFound
	}
	return nil
}
