package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	// Setup
	svc := NewJWTService("test-secret", "15m")

	// Act
	token, expiresAt, err := svc.GenerateAccessToken("emp-1", user.RoleManager)

	// Assert
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), time.Unix(expiresAt, 0), 5*time.Second)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTService_GenerateAccessToken_Invalid(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		svc := NewJWTService("test-secret", "15m")
		_, _, err := svc.GenerateAccessToken("emp-1", user.Role("owner"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("bad expiration", func(t *testing.T) {
		svc := NewJWTService("test-secret", "soon")
		_, _, err := svc.GenerateAccessToken("emp-1", user.RoleEmployee)
		assert.Error(t, err)
	})
}
