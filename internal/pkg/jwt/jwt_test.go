package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "0190d2a4-0000-7000-8000-000000000001", "admin")
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "0190d2a4-0000-7000-8000-000000000001", claims.CompanyID)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	_, err := svc.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService("other-secret", "1h")
	token, _, err := other.GenerateAccessToken("user-1", "c", "admin")
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, refresh, err := svc.JWTAuth().Encode(map[string]interface{}{"user_id": "user-1", "type": "refresh"})
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noCompany, _, err := svc.GenerateAccessToken("user-1", "", "admin")
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(noCompany)
	assert.ErrorIs(t, err, ErrCompanyRequired)

	expired := NewJWTService("test-secret", "-1h")
	old, _, err := expired.GenerateAccessToken("user-1", "c", "admin")
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
