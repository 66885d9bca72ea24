package seeder

import (
	"context"
	"fmt"

	"ayunova/internal/database"

	"github.com/google/uuid"
)

// WellnessSeeder gives the demo account an assessment, plans, a week of
// lifestyle logs and a few insights. It does nothing when the account
// already has lifestyle logs.
type WellnessSeeder struct{}

func (WellnessSeeder) Name() string { return "wellness" }

func (WellnessSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "lifestyle_logs", "user_id", "log_date", "sleep_hours", "energy_level", "mood", "exercise_minutes"); err != nil {
		return err
	}

	var userID uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, DemoEmail).Scan(&userID); err != nil {
		return fmt.Errorf("demo user: %w", err)
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM lifestyle_logs WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		return seedWellness(ctx, tx, userID)
	})
}

func seedWellness(ctx context.Context, tx database.Tx, userID uuid.UUID) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO dosha_assessments (user_id, primary_dosha, secondary_dosha) VALUES ($1, 'Vata', 'Pitta')`,
		userID,
	); err != nil {
		return err
	}

	for _, title := range []string{"Morning Dinacharya", "Vata-pacifying diet"} {
		if _, err := tx.Exec(ctx, `INSERT INTO wellness_plans (user_id, title) VALUES ($1, $2)`, userID, title); err != nil {
			return err
		}
	}

	logs := []struct {
		daysAgo  int
		sleep    float64
		energy   int
		mood     int
		exercise int
	}{
		{0, 7.5, 7, 8, 30},
		{1, 6, 5, 6, 0},
		{2, 8, 8, 8, 45},
		{3, 7, 6, 7, 20},
		{4, 6.5, 6, 5, 15},
		{5, 8, 9, 9, 60},
		{6, 7, 7, 7, 30},
	}
	for _, l := range logs {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO lifestyle_logs (user_id, log_date, sleep_hours, energy_level, mood, exercise_minutes)
			 VALUES ($1, CURRENT_DATE - $2::int, $3, $4, $5, $6)`,
			userID, l.daysAgo, l.sleep, l.energy, l.mood, l.exercise,
		); err != nil {
			return err
		}
	}

	insights := []struct{ kind, message string }{
		{"sleep", "Aim for bed before 10pm to settle Vata."},
		{"diet", "Favour warm, grounding meals this week."},
	}
	for _, in := range insights {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO wellness_insights (user_id, kind, message) VALUES ($1, $2, $3)`,
			userID, in.kind, in.message,
		); err != nil {
			return err
		}
	}

	return nil
}
