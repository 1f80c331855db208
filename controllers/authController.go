package controllers

import (
	"net/http"

	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgLoginSuccess  = "Login successful"
	msgLogoutSuccess = "Logged out"
	msgUserCreated   = "User created successfully"
)

func (h *Handler) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middlewares.SessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
}

func (h *Handler) Register(ctx *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(ctx, &in) {
		return
	}
	user, err := h.svc.Auth.Register(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create user")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

func (h *Handler) Login(ctx *gin.Context) {
	var in models.LoginData
	if !bindJSON(ctx, &in) {
		return
	}
	token, user, err := h.svc.Auth.Login(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Login failed")
		return
	}
	h.setSessionCookie(ctx, token, int(h.svc.Auth.TTL().Seconds()))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoginSuccess, "user": user, "token": token})
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLogoutSuccess})
}

func (h *Handler) AuthStatus(ctx *gin.Context) {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"authenticated": false})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"isAdmin":  claims.IsAdmin,
		},
	})
}
