package user

import (
	"time"

	"github.com/google/uuid"
)

// User holds sign-in credentials. Display data lives in profile.Profile.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
