package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	api.POST("/users", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/auth/status", h.AuthStatus)
}
