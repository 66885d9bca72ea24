package usecase

import (
	"context"
	"errors"

	"ayunova/internal/domain/user"
	"ayunova/internal/pkg/jwt"
	ucauth "ayunova/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrSessionRevoked      = errors.New("session revoked")
	ErrInternal            = errors.New("internal error")
)

// Tokens is the pair handed to a client after it authenticates.
type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// AuthResult is an authenticated account with its fresh tokens.
type AuthResult struct {
	User   user.User `json:"user"`
	Tokens Tokens    `json:"tokens"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

// RevocationChecker reports whether a token's session was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, claims jwt.Claims) (bool, error)
}

type Auth struct {
	accounts    *ucauth.Service
	users       user.Repository
	jwt         jwt.Service
	revocations RevocationChecker
}

// NewAuthUsecase builds the auth usecase. With nil revocations refresh
// tokens are never treated as signed out.
func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, revocations RevocationChecker) *Auth {
	return &Auth{accounts: ucauth.NewService(users), users: users, jwt: jwtSvc, revocations: revocations}
}

// Register creates the account and its empty profile, then signs it in.
func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.accounts.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.signIn(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.accounts.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.signIn(usr)
}

// Refresh rotates both tokens within the same session. Refresh tokens of a
// signed-out session are rejected, and accounts deleted since issue are
// unauthorized.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh || !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}
	if u.revocations != nil {
		revoked, err := u.revocations.IsRevoked(ctx, claims)
		if err != nil {
			return Tokens{}, ErrInternal
		}
		if revoked {
			return Tokens{}, ErrSessionRevoked
		}
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrUnauthorized
		}
		return Tokens{}, ErrInternal
	}
	return u.issue(usr, claims.SessionID)
}

func (u *Auth) signIn(usr user.User) (AuthResult, error) {
	t, err := u.issue(usr, "")
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: usr, Tokens: t}, nil
}

func (u *Auth) issue(usr user.User, sessionID string) (Tokens, error) {
	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email, sessionID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{Access: pair.Access, Refresh: pair.Refresh}, nil
}
