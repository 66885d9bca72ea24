package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

type Repository interface {
	// CreateWithProfile inserts the user and its profile row atomically. It
	// returns ErrEmailTaken when the email is already registered.
	CreateWithProfile(ctx context.Context, u User, fullName *string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}
