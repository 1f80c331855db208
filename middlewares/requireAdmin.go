package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	userKey       = "user"
	adminKey      = "admin"
)

// Authenticate attaches the session claims when a valid token is present in
// the session cookie or a Bearer header. Anonymous requests pass through.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookie)
		if err != nil || token == "" {
			header := ctx.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				ctx.Set(userKey, claims)
			}
		}
		ctx.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(userKey)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, ok := value.(*services.Claims)
		if !ok || !claims.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Set(adminKey, services.Admin{UserID: claims.UserID, Username: claims.Username})
		ctx.Next()
	}
}

// CurrentUser returns the authenticated claims, if any.
func CurrentUser(ctx *gin.Context) (*services.Claims, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}

// CurrentAdmin returns the admin placed on the context by RequireAdmin.
func CurrentAdmin(ctx *gin.Context) services.Admin {
	admin, _ := ctx.MustGet(adminKey).(services.Admin)
	return admin
}

func IsAdmin(ctx *gin.Context) bool {
	claims, ok := CurrentUser(ctx)
	return ok && claims.IsAdmin
}
