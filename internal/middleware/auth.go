package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/types"
)

// ContextUsername is the gin context key holding the authenticated user.
const ContextUsername = "username"

// TokenValidator is an interface for validating access tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// Authenticator accepts basic credentials as well as access tokens.
type Authenticator interface {
	TokenValidator
	CheckCredentials(username, password string) error
}

// AuthMiddleware accepts either HTTP basic credentials or a bearer token and
// stores the username in the gin context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		if username, password, ok := c.Request.BasicAuth(); ok {
			if err := auth.CheckCredentials(username, password); err != nil {
				unauthorized(c, "invalid credentials")
				return
			}
			c.Set(ContextUsername, username)
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context, details string) {
	c.Header("WWW-Authenticate", `Basic realm="recipe-picker"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
		ErrorCode: types.ErrorCodeUnauthorized,
		Details:   details,
	})
}
