// Package jwt issues and validates the HMAC signed session tokens. Access
// and refresh tokens use separate secrets; the token_type claim selects
// which one verifies a token.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	Issuer = "ayunova"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the session identity. SessionID is shared by the access
// and refresh token of one sign-in and is what sign-out revokes.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`
	SessionID string    `json:"sid,omitempty"`

	jwtlib.RegisteredClaims
}

// Pair is an access and refresh token bound to one session id.
type Pair struct {
	Access    string
	Refresh   string
	SessionID string
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	// GeneratePair issues tokens for sessionID, or for a new session when
	// sessionID is empty.
	GeneratePair(userID uuid.UUID, email, sessionID string) (Pair, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
	// SessionLifetime is how long any token of a session can stay valid.
	SessionLifetime() time.Duration
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.generate(TokenTypeAccess, userID, email, uuid.NewString())
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(TokenTypeRefresh, userID, "", uuid.NewString())
}

func (s *HMACService) GeneratePair(userID uuid.UUID, email, sessionID string) (Pair, error) {
	sid := sessionID
	if sid == "" {
		sid = uuid.NewString()
	}
	access, err := s.generate(TokenTypeAccess, userID, email, sid)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.generate(TokenTypeRefresh, userID, "", sid)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh, SessionID: sid}, nil
}

func (s *HMACService) SessionLifetime() time.Duration {
	return max(s.accessExpiresIn, s.refreshExpiresIn)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	var unverified Claims
	if _, _, err := jwtlib.NewParser().ParseUnverified(tokenString, &unverified); err != nil {
		return Claims{}, ErrTokenInvalid
	}
	secret, _, err := s.secretAndExpiry(unverified.TokenType)
	if err != nil {
		return Claims{}, err
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil, tok == nil, !tok.Valid:
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != unverified.TokenType {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

// TokenID returns the jti of the token.
func (c Claims) TokenID() string {
	return c.RegisteredClaims.ID
}

// RevocationID identifies what sign-out revokes: the session id, or the
// token id for tokens issued without one.
func (c Claims) RevocationID() string {
	if c.SessionID != "" {
		return c.SessionID
	}
	return c.TokenID()
}

// SessionRemaining is how long a token of c's session can still be valid
// after now. Refresh keeps issuing tokens for the session, so any of them
// may live a full lifetime from now; a token without a session id only
// lives until its own expiry.
func (c Claims) SessionRemaining(now time.Time, lifetime time.Duration) time.Duration {
	if c.SessionID == "" {
		return c.Remaining(now)
	}
	return max(lifetime, c.Remaining(now))
}

// Remaining is how long the token stays valid after now.
func (c Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}

func (s *HMACService) generate(tokenType string, userID uuid.UUID, email, sessionID string) (string, error) {
	secret, expIn, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		SessionID: sessionID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
			ID:        uuid.NewString(),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) secretAndExpiry(tokenType string) ([]byte, time.Duration, error) {
	var (
		secret []byte
		expIn  time.Duration
	)
	switch tokenType {
	case TokenTypeAccess:
		secret, expIn = s.accessSecret, s.accessExpiresIn
	case TokenTypeRefresh:
		secret, expIn = s.refreshSecret, s.refreshExpiresIn
	}
	if len(secret) == 0 || expIn <= 0 {
		return nil, 0, ErrTokenInvalid
	}
	return secret, expIn, nil
}
