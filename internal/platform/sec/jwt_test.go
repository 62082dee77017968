// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a freshly issued token carries the
subject it was issued for.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "hearth.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "hearth.app", claims.Issuer)
}

/*
TestTokenService_Expired verifies that an elapsed expiry is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "hearth.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", -time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestTokenService_Tampered verifies that a signature from a different secret
is rejected the same way an expired token is — an opaque error, no claims.
*/
func TestTokenService_Tampered(t *testing.T) {
	issuingService, err := sec.NewTokenService("secret-a", "hearth.app")
	require.NoError(t, err)
	verifyingService, err := sec.NewTokenService("secret-b", "hearth.app")
	require.NoError(t, err)

	token, err := issuingService.GenerateAccessToken("user-123", time.Hour)
	require.NoError(t, err)

	claims, err := verifyingService.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestTokenService_Malformed covers garbage input and empty strings.
*/
func TestTokenService_Malformed(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "hearth.app")
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		claims, err := service.VerifyToken(input)
		assert.Error(t, err, "input %q must be rejected", input)
		assert.Nil(t, claims)
	}
}

/*
TestTokenService_EmptySecret ensures the constructor refuses a blank secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	service, err := sec.NewTokenService("", "hearth.app")
	assert.Error(t, err)
	assert.Nil(t, service)
}

/*
TestHashPassword_RoundTrip covers the bcrypt helpers.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.False(t, strings.Contains(hash, "hunter2"), "hash must not embed the plaintext")

	assert.True(t, sec.CheckPasswordHash("hunter2hunter2", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

/*
TestGenerateSecureToken checks length and uniqueness of random tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, first, 64) // hex doubles the byte length
	assert.NotEqual(t, first, second)

	_, err = sec.GenerateSecureToken(0)
	assert.Error(t, err)
}
