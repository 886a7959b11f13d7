package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTamperedToken(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	// Flip the last character of the signature.
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'a' {
		tampered += "b"
	} else {
		tampered += "a"
	}

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenService([]byte("secret-one"), time.Hour).Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("secret-two"), time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestValidateMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService(secret, time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrSubjectMissing)
}

func TestValidateRejectsUnsignedAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("test-secret"), time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
