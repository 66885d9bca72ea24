package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	uid := uuid.New()

	tok, err := svc.GenerateAccessToken(uid, "asha@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.False(t, svc.IsRefreshToken(claims))
	assert.NotEmpty(t, claims.TokenID())
}

func TestHMACService_TokenIDsAreUnique(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	uid := uuid.New()

	t1, err := svc.GenerateAccessToken(uid, "")
	require.NoError(t, err)
	t2, err := svc.GenerateAccessToken(uid, "")
	require.NoError(t, err)

	c1, err := svc.ValidateToken(t1)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenID(), c2.TokenID())
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsForeignSecret(t *testing.T) {
	a := NewHMACService("a", "r", time.Minute, time.Hour)
	b := NewHMACService("x", "y", time.Minute, time.Hour)

	tok, err := a.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = b.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsSwappedSecrets(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	swapped := NewHMACService("r", "a", time.Minute, time.Hour)

	tok, err := swapped.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingSecret(t *testing.T) {
	svc := NewHMACService("", "r", time.Minute, time.Hour)
	_, err := svc.GenerateAccessToken(uuid.New(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClaims_Remaining(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := Claims{RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(90 * time.Second))}}
	assert.Equal(t, 90*time.Second, c.Remaining(now))

	c = Claims{RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Second))}}
	assert.Equal(t, time.Duration(0), c.Remaining(now))

	assert.Equal(t, time.Duration(0), Claims{}.Remaining(now))
}

func TestHMACService_GeneratePairSharesSessionID(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	uid := uuid.New()

	pair, err := svc.GeneratePair(uid, "asha@example.com", "")
	require.NoError(t, err)
	require.NotEmpty(t, pair.SessionID)

	access, err := svc.ValidateToken(pair.Access)
	require.NoError(t, err)
	refresh, err := svc.ValidateToken(pair.Refresh)
	require.NoError(t, err)

	assert.Equal(t, pair.SessionID, access.RevocationID())
	assert.Equal(t, pair.SessionID, refresh.RevocationID())
	assert.NotEqual(t, access.TokenID(), refresh.TokenID())
	assert.True(t, svc.IsRefreshToken(refresh))

	next, err := svc.GeneratePair(uid, "asha@example.com", pair.SessionID)
	require.NoError(t, err)
	assert.Equal(t, pair.SessionID, next.SessionID)
}

func TestClaims_RevocationIDFallsBackToTokenID(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	tok, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	c, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	c.SessionID = ""
	assert.Equal(t, c.TokenID(), c.RevocationID())
}

func TestClaims_SessionRemaining(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := Claims{RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Minute))}}

	assert.Equal(t, time.Minute, c.SessionRemaining(now, time.Hour))

	c.SessionID = "s1"
	assert.Equal(t, time.Hour, c.SessionRemaining(now, time.Hour))

	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	assert.Equal(t, time.Hour, svc.SessionLifetime())
}
