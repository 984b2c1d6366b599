package middleware

import (
	"net/http"
	"strings"

	"juanride/internal/pkg/jwt"
	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// token's user_id and role in the request context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, code, msg := bearerClaims(c, jwtService)
		if claims == nil {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// OptionalJWTAuth sets user_id and role when a valid bearer token is
// present and lets the request through either way. Anonymous callers reach
// the handler with an empty role. Used by endpoints that answer differently
// for authenticated and anonymous users, such as the route access check.
func OptionalJWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _, _ := bearerClaims(c, jwtService); claims != nil {
			c.Set("user_id", claims.UserID)
			c.Set("role", string(claims.Role))
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, "INVALID_TOKEN", "Invalid or expired token"
	}
	return claims, "", ""
}
