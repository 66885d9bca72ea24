package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ayunova/internal/pkg/jwt"

	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevoked      = errors.New("session revoked")
)

// Revocations records signed-out token ids until they expire.
type Revocations interface {
	SetMarker(ctx context.Context, key string, ttl time.Duration) error
	HasMarker(ctx context.Context, key string) (bool, error)
}

func RevokedKey(id string) string {
	return "session:revoked:" + id
}

// Resolver turns access tokens into sessions.
type Resolver struct {
	jwt         jwt.Service
	revocations Revocations
	log         *zap.Logger
	now         func() time.Time
}

func NewResolver(jwtSvc jwt.Service, revocations Revocations, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{jwt: jwtSvc, revocations: revocations, log: logger, now: time.Now}
}

// Resolve returns the session for token. An empty token is an anonymous
// session without error; any other failure returns an anonymous session and
// the reason.
func (r *Resolver) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Anonymous(), nil
	}

	claims, err := r.jwt.ValidateToken(token)
	if err != nil {
		return Anonymous(), fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || r.jwt.IsRefreshToken(claims) {
		return Anonymous(), ErrInvalidToken
	}

	revoked, err := r.IsRevoked(ctx, claims)
	if err != nil {
		return Anonymous(), err
	}
	if revoked {
		return Anonymous(), ErrRevoked
	}

	u := User{ID: claims.UserID, Email: claims.Email}
	return New(u, func(ctx context.Context) error {
		return r.revoke(ctx, claims)
	}), nil
}

// IsRevoked reports whether the session claims belongs to was signed out.
// It applies to access and refresh tokens alike.
func (r *Resolver) IsRevoked(ctx context.Context, claims jwt.Claims) (bool, error) {
	id := claims.RevocationID()
	if id == "" || r.revocations == nil {
		return false, nil
	}
	revoked, err := r.revocations.HasMarker(ctx, RevokedKey(id))
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}

// revoke marks the whole session, so its refresh token dies with the
// access token. The marker outlives every token of the session.
func (r *Resolver) revoke(ctx context.Context, claims jwt.Claims) error {
	id := claims.RevocationID()
	if id == "" {
		return fmt.Errorf("%w: token has no id", ErrInvalidToken)
	}
	if r.revocations == nil {
		return errors.New("no revocation store configured")
	}

	ttl := claims.SessionRemaining(r.now(), r.jwt.SessionLifetime())
	if ttl <= 0 {
		return nil
	}
	if err := r.revocations.SetMarker(ctx, RevokedKey(id), ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	r.log.Info("session revoked", zap.String("user_id", claims.UserID.String()))
	return nil
}
