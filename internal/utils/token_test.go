package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewQRCode(t *testing.T) {
	a := NewQRCode(7)
	b := NewQRCode(7)

	assert.True(t, strings.HasPrefix(a, "QR"))
	assert.NotEqual(t, a, b)
}

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "CUSTOMER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "CUSTOMER", claims["role"])
	assert.EqualValues(t, at.Exp.Unix(), claims["exp"])
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // low cost keeps the test fast
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
