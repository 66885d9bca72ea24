package seeder

import (
	"context"
	"fmt"

	"ayunova/internal/database"

	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmail    = "demo@ayunova.app"
	DemoPassword = "ayunova-demo"
	demoFullName = "Asha Demo"
)

// DemoUserSeeder creates a sign-in-able demo account and its profile.
type DemoUserSeeder struct{}

func (DemoUserSeeder) Name() string { return "demo_user" }

func (DemoUserSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "users", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := RequireColumns(ctx, db, "profiles", "id", "full_name", "constitution_type"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, password_hash) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (email) DO NOTHING`,
			DemoEmail,
			string(hash),
		); err != nil {
			return fmt.Errorf("insert demo user: %w", err)
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO profiles (id, full_name, constitution_type)
			 SELECT id, $2, 'Vata' FROM users WHERE email = $1
			 ON CONFLICT (id) DO NOTHING`,
			DemoEmail,
			demoFullName,
		); err != nil {
			return fmt.Errorf("insert demo profile: %w", err)
		}
		return nil
	})
}
