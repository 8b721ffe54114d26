package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "staff-1", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWTRejects(t *testing.T) {
	token, err := GenerateJWT("secret", "staff-1", "admin", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("secret", "staff-1", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT("other", token)
	assert.Error(t, err)

	_, err = ValidateJWT("secret", expired)
	assert.Error(t, err)

	_, err = ValidateJWT("", token)
	assert.Error(t, err)

	_, err = ValidateJWT("secret", "not.a.token")
	assert.Error(t, err)
}
