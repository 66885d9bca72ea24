// Package seeder inserts demo data into a migrated database. Every seeder
// is idempotent so `ayunova seed` can run repeatedly.
package seeder

import (
	"context"

	"ayunova/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
