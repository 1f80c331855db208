package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api, admin *gin.RouterGroup, h *controllers.Handler) {
	api.POST("/orders", middlewares.RequireSession(), h.CreateOrder)
	api.GET("/orders/:id", h.GetOrder)
	api.PUT("/orders/:id/payment", h.PayOrder)

	orders := admin.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.POST("/bulk-status", h.BulkUpdateOrderStatus)
		orders.POST("/:id/shipping-label", h.CreateShippingLabel)
		orders.GET("/:id/shipping-labels", h.GetShippingLabels)
	}

	admin.GET("/shipping/options", h.GetShippingOptions)
	admin.GET("/stats", h.GetDashboardStats)
}
