package middleware

import (
	"net/http"
	"strings"

	"adminpanel/internal/auth"
	"adminpanel/internal/domain"

	"github.com/gin-gonic/gin"
)

const userKey = "auth_user"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token with 401.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(userKey, claims.Context())
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		rc, ok := CurrentUser(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if _, ok := allowed[rc.Role]; !ok {
			abortJSON(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity stored by RequireAuth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}
