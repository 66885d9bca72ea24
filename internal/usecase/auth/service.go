// Package auth owns account credentials: registration with the initial
// profile row, and password sign-in.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ayunova/internal/domain/user"
)

const MinPasswordLength = 8

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return NewServiceWithCost(users, bcrypt.DefaultCost)
}

// NewServiceWithCost is NewService with an explicit bcrypt cost.
func NewServiceWithCost(users user.Repository, cost int) *Service {
	return &Service{users: users, cost: cost}
}

// Register creates the account and its profile row. The profile starts with
// the collapsed full name, or NULL when none was given.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(strings.TrimSpace(in.Password)) < MinPasswordLength {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	switch {
	case err != nil:
		return user.User{}, ErrInternal
	case exists:
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	id := uuid.New()
	err = s.users.CreateWithProfile(ctx, user.User{ID: id, Email: email, PasswordHash: string(hash)}, normalizeName(in.FullName))
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		return user.User{}, ErrEmailAlreadyRegistered
	case err != nil:
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return withoutSecret(created), nil
}

// Login never says which of email or password was wrong.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return withoutSecret(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName collapses inner whitespace; blank names become nil.
func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	n := strings.Join(strings.Fields(*name), " ")
	if n == "" {
		return nil
	}
	return &n
}

func withoutSecret(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
