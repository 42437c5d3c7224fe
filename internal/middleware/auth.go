package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/types"
)

type AuthenticatedAdmin struct {
	Email string `json:"email"`
}

// AuthMiddleware accepts a Bearer token or the session cookie. A nil issuer
// means authentication is not configured and every request passes.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if issuer == nil {
			ctx.Next()
			return
		}

		tokenString, ok := bearerToken(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := issuer.VerifyJWT(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextAdminKey, AuthenticatedAdmin{Email: claims.Email})
		ctx.Next()
	}
}

// bearerToken prefers the Authorization header and falls back to the cookie.
// ok is false only for a malformed header.
func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	cookie, err := ctx.Cookie(types.TokenCookieName)
	if err != nil {
		return "", true
	}

	return cookie, true
}
