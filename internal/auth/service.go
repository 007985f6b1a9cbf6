package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("auth service not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Identity is the resolved subject of a verified bearer token.
type Identity struct {
	UID   string
	Email string
}

// Service verifies bearer tokens issued by the identity provider. It is
// constructed once at startup; when no signing secret is configured the
// service stays permanently unavailable and every verification fails
// with ErrNotConfigured instead of silently bypassing authentication.
type Service struct {
	secret []byte
	expiry time.Duration
}

func NewService(secret string, expiryHours int) *Service {
	s := &Service{expiry: time.Duration(expiryHours) * time.Hour}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

// Ready reports whether the service can verify tokens.
func (s *Service) Ready() bool {
	return len(s.secret) > 0
}

// Verify checks the token signature and expiry and extracts the identity.
func (s *Service) Verify(tokenStr string) (Identity, error) {
	if !s.Ready() {
		return Identity{}, ErrNotConfigured
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return Identity{}, ErrInvalidClaims
	}

	uid, ok := claims["sub"].(string)
	if !ok || uid == "" {
		return Identity{}, ErrInvalidClaims
	}

	email, _ := claims["email"].(string)
	return Identity{UID: uid, Email: email}, nil
}

// Issue signs a token for the given identity. Used by tests and tooling;
// in production tokens come from the identity provider itself.
func (s *Service) Issue(id Identity) (string, error) {
	if !s.Ready() {
		return "", ErrNotConfigured
	}

	claims := jwt.MapClaims{
		"sub":   id.UID,
		"email": id.Email,
		"exp":   time.Now().Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
