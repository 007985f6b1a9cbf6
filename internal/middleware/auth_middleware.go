package middleware

import (
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key under which the verified identity is stored.
const IdentityKey = "identity"

// RequireAuth verifies the bearer token on every request and attaches the
// resolved identity to the context. Verification is stateless; there is no
// server-side session.
func RequireAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			_ = c.Error(apperr.Unauthenticated("Not authorized, no token"))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")

		if !svc.Ready() {
			_ = c.Error(apperr.Unavailable("Auth service not configured"))
			c.Abort()
			return
		}

		identity, err := svc.Verify(token)
		if err != nil {
			_ = c.Error(apperr.Unauthenticated("Not authorized, token failed"))
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by RequireAuth.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
