package usecase

import (
	"context"
	"errors"
	"fmt"

	"ayunova/internal/session"

	"go.uber.org/zap"
)

var ErrSignOutFailed = errors.New("sign out failed")

type SignOutUsecase interface {
	SignOut(ctx context.Context, s session.Session) (Notification, error)
}

type SignOut struct {
	observer SessionObserver
	log      *zap.Logger
}

func NewSignOutUsecase(observer SessionObserver, logger *zap.Logger) *SignOut {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignOut{observer: observer, log: logger}
}

// SignOut ends s and returns the single notification describing the
// outcome. Live connections of the user only learn that the session ended.
// Nothing is retried and no navigation happens here.
func (u *SignOut) SignOut(ctx context.Context, s session.Session) (Notification, error) {
	userID := s.UserID()

	if err := s.SignOut(ctx); err != nil {
		u.log.Warn("sign out failed", zap.String("user_id", userID.String()), zap.Error(err))
		return SignOutFailedNotification, fmt.Errorf("%w: %w", ErrSignOutFailed, err)
	}

	u.log.Info("signed out", zap.String("user_id", userID.String()))
	if u.observer != nil {
		u.observer.SignedOut(userID)
	}
	return SignedOutNotification, nil
}
