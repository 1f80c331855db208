package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, h *controllers.Handler) {
	server.GET("/", h.GetHome)
	server.GET("/api/healthz", h.HealthCheck)
}
