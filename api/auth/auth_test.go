package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/soundbound/soundbound-server/model"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("frodo", 42, model.RoleReader, time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	claims := &ClaimsMessage{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "frodo", claims.Name)
	require.Equal(t, "reader", claims.Role)
	require.Equal(t, KeyID, parsed.Header["kid"])
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("frodo", 42, model.RoleReader, time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)

	claims := &ClaimsMessage{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.Error(t, err)
}
