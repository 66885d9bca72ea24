package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the display record of an account. Its ID is the owning
// user's ID.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	FullName         *string   `json:"full_name"`
	ConstitutionType *string   `json:"constitution_type"`
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Profile, error)
}
