package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/foodorders/internal/pkg/auth"
	"github.com/polkiloo/foodorders/internal/server/http/dto"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated caller.
	PrincipalContextKey = "principal"
	tokenQueryParam     = "access_token"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Principal, error)
}

// AuthRequired ensures caller is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Missing token"))
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token"))
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Internal error"))
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// PartnerRequired rejects authenticated callers without the partner role.
// It must run after AuthRequired.
func PartnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok || !principal.IsPartner() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Forbidden"))
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the caller stored by AuthRequired.
func CurrentPrincipal(c *gin.Context) (pkgAuth.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return pkgAuth.Principal{}, false
	}
	principal, ok := val.(pkgAuth.Principal)
	return principal, ok
}

// extractToken reads the bearer token, falling back to the access_token query
// parameter for EventSource and WebSocket clients that cannot set headers.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Query(tokenQueryParam))
}
