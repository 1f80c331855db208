package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/gin-gonic/gin"
)

func InboxRoutes(api, admin *gin.RouterGroup, h *controllers.Handler) {
	api.POST("/contact", h.SubmitContact)
	api.POST("/newsletter", h.Subscribe)

	admin.GET("/contact-messages", h.ListContactMessages)
	admin.GET("/subscribers", h.ListSubscribers)
}
