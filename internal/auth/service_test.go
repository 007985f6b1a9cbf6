package auth_test

import (
	"testing"
	"time"

	"taskboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestIssueAndVerify(t *testing.T) {
	svc := auth.NewService("test-secret-key", 24)

	identity := auth.Identity{UID: "user-123", Email: "user@example.com"}
	token, err := svc.Issue(identity)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := svc.Verify(token)

	assert.NoError(t, err)
	assert.Equal(t, identity, verified)
}

func TestVerify_InvalidToken(t *testing.T) {
	svc := auth.NewService("test-secret-key", 24)

	_, err := svc.Verify("invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := auth.NewService("test-secret-key", 24)

	claims := jwt.MapClaims{
		"sub":   "user-123",
		"email": "user@example.com",
		"exp":   time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte("test-secret-key"))

	_, err := svc.Verify(expiredToken)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	other := auth.NewService("other-secret", 24)
	token, err := other.Issue(auth.Identity{UID: "user-123"})
	assert.NoError(t, err)

	svc := auth.NewService("test-secret-key", 24)
	_, err = svc.Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_MissingSubject(t *testing.T) {
	svc := auth.NewService("test-secret-key", 24)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		// no "sub"
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutSub, _ := token.SignedString([]byte("test-secret-key"))

	_, err := svc.Verify(tokenWithoutSub)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestService_NotConfigured(t *testing.T) {
	svc := auth.NewService("", 24)

	assert.False(t, svc.Ready())

	_, err := svc.Verify("any-token")
	assert.ErrorIs(t, err, auth.ErrNotConfigured)

	_, err = svc.Issue(auth.Identity{UID: "user-123"})
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
}
