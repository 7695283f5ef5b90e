package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenIssuedWithSameKey(t *testing.T) {
	util := NewJWTUtil("secret")

	token, err := util.GenerateToken("admin@shop.test", 7, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@shop.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsForeignKey(t *testing.T) {
	token, err := NewJWTUtil("other-secret").GenerateToken("admin@shop.test", 7, "admin", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTUtil("secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	util := NewJWTUtil("secret")

	token, err := util.GenerateToken("admin@shop.test", 7, "admin", -time.Minute)
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestEmptySigningKey(t *testing.T) {
	_, err := NewJWTUtil("").GenerateToken("admin@shop.test", 7, "admin", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTUtil("").ValidateToken("anything")
	assert.Error(t, err)
}
