package usecase

import (
	"context"

	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/user"
	ucuser "ayunova/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (ucuser.Me, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository, profiles profile.Repository) *User {
	return &User{svc: ucuser.NewService(users, profiles)}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (ucuser.Me, error) {
	return u.svc.GetMe(ctx, userID)
}
