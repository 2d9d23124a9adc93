package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_RoundTripsPrincipal(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	want := access.Principal{ID: "0190a1b2-0000-7000-8000-000000000001", Email: "mentor@example.com", Role: access.RoleMentor}

	tokenString, expiresAt, err := svc.GenerateAccessToken(want)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	got, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPrincipalFromClaims_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"refresh token", map[string]interface{}{"type": "refresh", "user_id": "u1", "role": "admin"}},
		{"missing user", map[string]interface{}{"type": "access", "role": "admin"}},
		{"unknown role", map[string]interface{}{"type": "access", "user_id": "u1", "role": "owner"}},
		{"empty", map[string]interface{}{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrincipalFromClaims(tc.claims)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	accessToken, _, err := svc.GenerateAccessToken(access.Principal{ID: "user-1", Role: access.RoleIntern})
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err, "access token must not be accepted as refresh token")

	other := NewJWTService("another-secret", "1h", "24h")
	_, err = other.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestGenerateRefreshToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "not-a-duration")
	_, _, err := svc.GenerateRefreshToken("user-1")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	token, _, err := svc.GenerateAccessToken(access.Principal{ID: "user-1", Role: access.RoleMentor})
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))

	svc.RevokeToken("not-a-token")
	assert.False(t, svc.IsTokenRevoked("not-a-token"))
}

func TestPruneRevokedTokens(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	token, expiresAt, err := svc.GenerateAccessToken(access.Principal{ID: "user-1", Role: access.RoleAdmin})
	require.NoError(t, err)
	svc.RevokeToken(token)

	assert.Zero(t, svc.PruneRevokedTokens(time.Now()))
	assert.True(t, svc.IsTokenRevoked(token))

	assert.Equal(t, 1, svc.PruneRevokedTokens(time.Unix(expiresAt, 0).Add(time.Second)))
	assert.False(t, svc.IsTokenRevoked(token))
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	first, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
