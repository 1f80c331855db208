package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader = "X-Session-ID"
	sessionKey    = "sessionID"
)

// RequireSession rejects cart and checkout calls that carry no anonymous
// shopper session token.
func RequireSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID := strings.TrimSpace(ctx.GetHeader(SessionHeader))
		if sessionID == "" {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Session ID required"})
			return
		}
		ctx.Set(sessionKey, sessionID)
		ctx.Next()
	}
}

func SessionID(ctx *gin.Context) string {
	return ctx.GetString(sessionKey)
}
