package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	employeeID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	token, exp, err := svc.GenerateAccessToken("user-1", "a@b.cd", &employeeID, user.RoleSupervisor)
	require.NoError(t, err)
	assert.NotZero(t, exp)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.cd", claims.Email)
	assert.Equal(t, employeeID, claims.EmployeeID)
	assert.Equal(t, user.RoleSupervisor, claims.Role)
	assert.False(t, claims.IsAdmin())

	typ, ok := decoded.Get("type")
	assert.True(t, ok)
	assert.Equal(t, "access", typ)
}

func TestGenerateAccessToken_AdminWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "30m")

	token, _, err := svc.GenerateAccessToken("admin-1", "admin@b.cd", nil, user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := ClaimsFromContext(jwtauth.NewContext(context.Background(), decoded, nil))
	require.NoError(t, err)
	assert.Empty(t, claims.EmployeeID)
	assert.True(t, claims.IsAdmin())
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken("u", "e", nil, user.RoleUser)
	assert.Error(t, err)
}

func TestClaimsFromContext_Empty(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}
