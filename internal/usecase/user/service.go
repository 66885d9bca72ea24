package user

import (
	"context"
	"errors"

	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Me is the signed-in account together with its profile. Profile is nil
// when the profile row is missing.
type Me struct {
	User    user.User        `json:"user"`
	Profile *profile.Profile `json:"profile"`
}

type Service struct {
	users    user.Repository
	profiles profile.Repository
}

func NewService(users user.Repository, profiles profile.Repository) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, ErrInternal
	}

	me := Me{User: sanitizeUser(usr)}
	p, err := s.profiles.FindByID(ctx, userID)
	switch {
	case err == nil:
		me.Profile = &p
	case errors.Is(err, profile.ErrNotFound):
	default:
		return Me{}, ErrInternal
	}
	return me, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
