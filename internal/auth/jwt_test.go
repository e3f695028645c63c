package auth

import (
	"testing"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret-at-least-32-characters-long"
	user := &models.User{ID: 7, Username: "alice", Role: models.RolePresident}

	signed, err := GenerateToken(secret, user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(signed, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RolePresident, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Username: "bob", Role: models.RoleBarman}

	signed, err := GenerateToken("the-signing-secret-32-characters!", user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret-32-characters!"), nil
	})
	assert.Error(t, err)
}
