package repository

import (
	"context"
	"database/sql"
	"errors"

	"ayunova/internal/database"
	"ayunova/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, full_name, constitution_type
		 FROM profiles
		 WHERE id = $1`,
		id,
	)

	var p profile.Profile
	if err := row.Scan(&p.ID, &p.FullName, &p.ConstitutionType); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}
