package repository

import (
	"context"
	"database/sql"
	"errors"

	"ayunova/internal/database"
	"ayunova/internal/domain/wellness"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresWellnessRepository struct {
	db database.DB
}

func NewPostgresWellnessRepository(db database.DB) *PostgresWellnessRepository {
	return &PostgresWellnessRepository{db: db}
}

// LatestDoshaAssessment returns nil when the user has not taken one.
func (r *PostgresWellnessRepository) LatestDoshaAssessment(ctx context.Context, userID uuid.UUID) (*wellness.DoshaAssessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, primary_dosha, secondary_dosha, created_at
		 FROM dosha_assessments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var a wellness.DoshaAssessment
	if err := row.Scan(&a.ID, &a.UserID, &a.PrimaryDosha, &a.SecondaryDosha, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PostgresWellnessRepository) ListWellnessPlans(ctx context.Context, userID uuid.UUID) ([]wellness.WellnessPlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, created_at
		 FROM wellness_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wellness.WellnessPlan, 0)
	for rows.Next() {
		var p wellness.WellnessPlan
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLifestyleLogs returns every log of the user, newest first.
func (r *PostgresWellnessRepository) ListLifestyleLogs(ctx context.Context, userID uuid.UUID) ([]wellness.LifestyleLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, log_date, sleep_hours, energy_level, mood, exercise_minutes
		 FROM lifestyle_logs
		 WHERE user_id = $1
		 ORDER BY log_date DESC NULLS LAST, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wellness.LifestyleLog, 0)
	for rows.Next() {
		var l wellness.LifestyleLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.LogDate, &l.SleepHours, &l.EnergyLevel, &l.Mood, &l.ExerciseMinutes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWellnessRepository) ListInsights(ctx context.Context, userID uuid.UUID, limit int) ([]wellness.Insight, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, kind, message, created_at
		 FROM wellness_insights
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wellness.Insight, 0)
	for rows.Next() {
		var in wellness.Insight
		if err := rows.Scan(&in.ID, &in.UserID, &in.Kind, &in.Message, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
